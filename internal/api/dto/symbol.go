package dto

// SymbolResponse is one entry of the tradable symbol directory.
type SymbolResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
