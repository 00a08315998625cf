package simrun

// Mode is the pipeline execution mode.
type Mode int

const (
	// ModeStandalone computes figures from raw data for a single run and
	// exports reusable plot metadata.
	ModeStandalone Mode = iota
	// ModeComparison reconstructs overlay figures for multiple runs from
	// previously exported metadata only.
	ModeComparison
)

func (m Mode) String() string {
	if m == ModeComparison {
		return "comparison"
	}
	return "standalone"
}

// SelectMode picks the pipeline mode from the snapshot count alone:
// one snapshot is standalone, two or more is comparison. Catalogue and
// input-directory list lengths carry no signal.
func SelectMode(snapshotCount int) Mode {
	if snapshotCount >= 2 {
		return ModeComparison
	}
	return ModeStandalone
}
