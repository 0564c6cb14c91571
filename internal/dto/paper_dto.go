package dto

type UploadPaperResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

type RemovePaperRequest struct {
	Filename string `json:"filename" validate:"required"`
}

type ListPapersResponse struct {
	Papers []string `json:"papers"`
}
