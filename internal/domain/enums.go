package domain

import "strings"

// DocumentType identifies which extraction pipeline a file goes through.
type DocumentType string

const (
	DocTypePessoa  DocumentType = "pessoa"
	DocTypeVeiculo DocumentType = "veiculo"
	DocTypeCTE     DocumentType = "cte"
)

// ParseDocumentType normalizes a user-supplied tipo string, defaulting to pessoa.
func ParseDocumentType(s string) DocumentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "veiculo":
		return DocTypeVeiculo
	case "cte":
		return DocTypeCTE
	default:
		return DocTypePessoa
	}
}

// AllowedImageTypes are the image content types accepted on upload.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}
