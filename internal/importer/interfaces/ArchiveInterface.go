package interfaces

// ArchiveInterface stores raw upstream page payloads for audit and replay.
type ArchiveInterface interface {
	StorePage(runId string, page int, body []byte) error
}
