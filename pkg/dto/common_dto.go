package dto

import "io"

// UploadFile is a multipart file handed from a handler to a service.
type UploadFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

// MessageResponse is the acknowledgement body for deletes.
type MessageResponse struct {
	Message string `json:"message"`
}
