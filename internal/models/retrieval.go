package models

// RetrievalResult holds the generated answer and supporting citations
// returned by a single retrieve-and-generate call. Instances are
// transient: built per call, discarded after formatting.
type RetrievalResult struct {
	// Answer is the synthesized natural-language response
	Answer string

	// Citations lists the source documents backing the answer,
	// in the order the service returned them (possibly empty)
	Citations []Citation
}

// Citation references a source document backing part of a generated answer
type Citation struct {
	// SourceURI is the storage location of the cited document
	// (e.g. "s3://bucket/doc.md"). Empty when the service returned
	// a reference without a resolvable location.
	SourceURI string
}
