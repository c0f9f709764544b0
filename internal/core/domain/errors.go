package domain

import "errors"

// ErrInvalidRequest is an error thrown on malformed caller input; never retried
var ErrInvalidRequest = errors.New("invalid request")

// ErrStorageUnavailable is an error thrown when the storage service signing or
// finalize call fails; caller may retry with backoff
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrPartUploadFailed is an error thrown on a transient part transfer failure;
// retryable by the caller with the same part number
var ErrPartUploadFailed = errors.New("part upload failed")

// ErrIncompleteUpload is an error thrown when a multipart completion is
// requested with a gap in part numbers or no parts at all
var ErrIncompleteUpload = errors.New("incomplete upload")

// ErrDuplicatePart is an error thrown when parts are duplicated
var ErrDuplicatePart = errors.New("duplicate part")

// ErrUploadRejected is an error thrown when the storage service answers a
// byte transfer with a non-2xx status
var ErrUploadRejected = errors.New("upload rejected")

// ErrNetworkFailure is an error thrown on a transport-level transfer failure
var ErrNetworkFailure = errors.New("network failure")

// ErrAborted is an error thrown when an in-flight transfer is aborted
var ErrAborted = errors.New("transfer aborted")

// ErrObjectMissing is an error thrown when a record's underlying object no
// longer exists in storage; requires manual reconciliation
var ErrObjectMissing = errors.New("object missing from storage")

// ErrPersistenceFailed is an error thrown when the record store write fails
// after the object is already finalized in storage; the object is orphaned
// and a reconciliation pass, not a retry, is the remedy
var ErrPersistenceFailed = errors.New("persistence failed")

// ErrRecordNotFound is an error thrown when a media record is not found
var ErrRecordNotFound = errors.New("media record not found")
