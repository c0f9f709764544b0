package domain

import "time"

// UploadPart represents one acknowledged chunk of a multipart upload
type UploadPart struct {
	PartNumber int
	ETag       string
}

// MultipartUpload represents an open multipart session against the storage service
type MultipartUpload struct {
	UploadID   string
	StorageKey string
}

// CredentialRequest is the input to upload credential issuance
type CredentialRequest struct {
	FileName        string
	ContentType     string
	Expires         time.Duration
	GeneratePlayURL bool
}

// UploadCredential is a set of time-boxed signed URLs for one object
type UploadCredential struct {
	UploadURL        string
	DownloadURL      string
	PlayURL          string
	PlayURLExpiresAt *time.Time
	StorageKey       string
	OriginalFileName string
	ContentType      string
	ExpiresIn        time.Duration
	Bucket           string
}
