package model

const (
	FileKindAvatar      = "avatar"
	FileKindPublication = "publication"
)

// FileCleanupJob asks the cleanup worker to remove a stored upload that is no
// longer referenced.
type FileCleanupJob struct {
	Kind     string `json:"kind"`
	Filename string `json:"filename"`
}
