package dto

// PageMeta metadatos de paginación en respuestas de listado.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ScopeErrorResponse cuerpo de error 403 por marca: incluye qué marcas exigía
// la operación y cuáles tiene el caller (trade-off de divulgación aceptado
// para depuración).
type ScopeErrorResponse struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Required []string `json:"required"`
	Yours    []string `json:"yours"`
}
