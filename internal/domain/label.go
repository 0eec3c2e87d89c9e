package domain

// EncodeRequest é o payload de POST /v1/gs1/encode. Datas aceitam YYYY-MM-DD ou DD-MM-YYYY.
type EncodeRequest struct {
	GTIN       string `json:"gtin" example:"8901234567895"`
	ExpiryDate string `json:"expiry_date" example:"2025-12-31"`
	MfgDate    string `json:"mfg_date" example:"2025-01-15"`
	BatchNo    string `json:"batch_no" example:"B1"`
	SerialNo   string `json:"serial_no" example:"S1"`
	MRP        string `json:"mrp,omitempty" example:"149,90"`
	SKU        string `json:"sku,omitempty"`
	Company    string `json:"company,omitempty"`
}

// Label é a saída do codificador nas duas formas.
type Label struct {
	Payload       string `json:"payload"`        // Forma compacta (FNC1 = 0x1D)
	HumanReadable string `json:"human_readable"` // Forma (AI)valor
	GTIN          string `json:"gtin"`
}

// DecodeRequest é o payload de POST /v1/gs1/decode.
type DecodeRequest struct {
	Raw string `json:"raw"`
}

// VerifyRequest compara um código lido com o payload esperado.
type VerifyRequest struct {
	Expected string `json:"expected"`
	Scanned  string `json:"scanned"`
}

// VerifyResult é a resposta da verificação.
type VerifyResult struct {
	Match      bool   `json:"match"`
	Expected   string `json:"expected"` // Formas normalizadas
	Scanned    string `json:"scanned"`
	ScanParsed bool   `json:"scan_parsed"`
}

// GTINRequest é o payload de POST /v1/gs1/gtin/validate.
type GTINRequest struct {
	GTIN string `json:"gtin" example:"4006381333931"`
}

// GTINResponse devolve o GTIN-14 normalizado.
type GTINResponse struct {
	GTIN  string `json:"gtin" example:"04006381333931"`
	Valid bool   `json:"valid"`
}
