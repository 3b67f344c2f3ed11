package model

// Paging is the page-number pagination block carried by files.list. Files
// predate cursor pagination on the Slack API.
type Paging struct {
	Count int `json:"count"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type FilesListResponse struct {
	Files  []*File `json:"files"`
	Paging *Paging `json:"paging,omitempty"`
}

type FileInfoResponse struct {
	File *File `json:"file"`
}
