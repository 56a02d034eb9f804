package propagate

type (
	// Sent after the version record has been loaded.
	EventRecordLoaded struct {
		Version     string
		ReleaseDate string
	}

	// Sent when the current version has been found in a document.
	EventDetected struct {
		Version string
		Path    string
	}

	// Sent to update the total document count.
	EventSetDocumentTotal int

	// Sent when a document rewrite has started.
	EventRewritingDocument string

	// Sent when a document has been processed.
	EventRewroteDocument struct {
		Err     error
		Path    string
		Updated bool
	}

	// Sent after the version record has been written.
	EventRecordSaved struct {
		Path        string
		Previous    string
		Version     string
		ReleaseDate string
	}

	// Sent by front ends when the whole operation has finished.
	EventDone struct {
		Err error
	}
)
