package types

// StageTools holds the executables invoked for each build stage.
type StageTools struct {
	Translate string
	Assemble  string
	Link      string
}

func (t StageTools) For(stage Stage) string {
	switch stage {
	case StageTranslate:
		return t.Translate
	case StageAssemble:
		return t.Assemble
	case StageLink:
		return t.Link
	default:
		return ""
	}
}

type StageResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r StageResult) Succeeded() bool {
	return r.ExitCode == 0
}
