package dto

// UploadResponse is returned by the server-side upload endpoint.
type UploadResponse struct {
	Path      string `json:"path"`
	PublicURL string `json:"publicUrl"`
}

// ReportOrphanRequest marks an uploaded object whose product row never
// committed, so the cleanup worker can garbage-collect it.
type ReportOrphanRequest struct {
	Path   string `json:"path"   validate:"required,max=512"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}
