package domain

// DocumentSource tags which loader tier produced a document.
type DocumentSource string

const (
	SourceCanonical DocumentSource = "canonical"
	SourceLegacy    DocumentSource = "legacy"
	SourceSample    DocumentSource = "sample"
)

// Real reports whether the document holds production data rather than the built-in sample.
func (s DocumentSource) Real() bool {
	return s == SourceCanonical || s == SourceLegacy
}

func (s DocumentSource) Note() string {
	switch s {
	case SourceCanonical:
		return "Hospital data with estimates for visualization"
	case SourceLegacy:
		return "Hospital data from the legacy metrics document"
	}
	return "Sample data, metrics documents could not be loaded"
}

type LoadedDocument struct {
	Document *AnalyticsDocument
	Source   DocumentSource
}
