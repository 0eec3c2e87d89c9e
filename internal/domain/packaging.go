package domain

import "time"

// Level é um nível da hierarquia de embalagem. A ordem é total: box < carton < pallet.
type Level int

const (
	LevelBox Level = iota + 1
	LevelCarton
	LevelPallet
)

// Levels lista os níveis em ordem crescente.
var Levels = []Level{LevelBox, LevelCarton, LevelPallet}

func (l Level) String() string {
	switch l {
	case LevelBox:
		return "box"
	case LevelCarton:
		return "carton"
	case LevelPallet:
		return "pallet"
	}
	return "unknown"
}

// Valid informa se o nível pertence ao enum fechado.
func (l Level) Valid() bool {
	return l >= LevelBox && l <= LevelPallet
}

// PackingRule é a regra de embalagem de um SKU para uma empresa.
type PackingRule struct {
	CompanyID      string    `json:"company_id"`
	SKU            string    `json:"sku"`
	CompanyPrefix  string    `json:"company_prefix"`  // Prefixo GS1 da empresa (7 a 9 dígitos)
	ExtensionDigit int       `json:"extension_digit"` // Dígito de extensão SSCC (0 a 9)
	UpdatedAt      time.Time `json:"updated_at"`
}

// GenerationRequest é o payload de POST /v1/sscc/generate.
type GenerationRequest struct {
	CompanyID        string `json:"-"` // Preenchido a partir das claims do token
	SKU              string `json:"sku" example:"SKU-001"`
	BatchNo          string `json:"batch_no" example:"B1"`
	ExpiryDate       string `json:"expiry_date,omitempty" example:"2025-12-31"`
	UnitsPerBox      int    `json:"units_per_box" example:"10"`
	BoxesPerCarton   int    `json:"boxes_per_carton" example:"5"`
	CartonsPerPallet int    `json:"cartons_per_pallet" example:"4"`
	Pallets          int    `json:"pallets" example:"2"`
	GenerateBox      bool   `json:"generate_box"`
	GenerateCarton   bool   `json:"generate_carton"`
	GeneratePallet   bool   `json:"generate_pallet"`
}

// Requested informa se o nível foi solicitado.
func (r GenerationRequest) Requested(l Level) bool {
	switch l {
	case LevelBox:
		return r.GenerateBox
	case LevelCarton:
		return r.GenerateCarton
	case LevelPallet:
		return r.GeneratePallet
	}
	return false
}

// RequestedLevels devolve os níveis solicitados em ordem crescente.
func (r GenerationRequest) RequestedLevels() []Level {
	var out []Level
	for _, l := range Levels {
		if r.Requested(l) {
			out = append(out, l)
		}
	}
	return out
}

// Multiplicity devolve o multiplicador de conteúdo do nível:
// unidades por caixa, caixas por carton ou cartons por pallet.
func (r GenerationRequest) Multiplicity(l Level) int {
	switch l {
	case LevelBox:
		return r.UnitsPerBox
	case LevelCarton:
		return r.BoxesPerCarton
	case LevelPallet:
		return r.CartonsPerPallet
	}
	return 0
}

// GeneratedCode é um SSCC emitido para um nível.
type GeneratedCode struct {
	Level    Level  `json:"-"`
	SSCC     string `json:"sscc" example:"106141411234567897"`
	Serial   int64  `json:"serial"`
	Sequence int    `json:"sequence"` // Posição 1..N dentro do nível
}

// SSCCRecord é a linha persistida em sscc_boxes, sscc_cartons ou sscc_pallets.
type SSCCRecord struct {
	ID         string
	CompanyID  string
	SKU        string
	BatchNo    string
	ExpiryDate time.Time // Zero quando não informada
	Code       GeneratedCode
	CreatedAt  time.Time
}

// GenerationResult é a resposta de uma geração bem-sucedida.
type GenerationResult struct {
	Boxes         []GeneratedCode `json:"boxes"`
	Cartons       []GeneratedCode `json:"cartons"`
	Pallets       []GeneratedCode `json:"pallets"`
	TotalCount    int             `json:"total_count" example:"32"`
	Warning       string          `json:"warning,omitempty"`
	FirstSerial   int64           `json:"first_serial"`
	CompanyPrefix string          `json:"company_prefix" example:"0614141"`
}

// Codes devolve o grupo de códigos do nível.
func (g *GenerationResult) Codes(l Level) []GeneratedCode {
	switch l {
	case LevelBox:
		return g.Boxes
	case LevelCarton:
		return g.Cartons
	case LevelPallet:
		return g.Pallets
	}
	return nil
}

func (g *GenerationResult) setCodes(l Level, codes []GeneratedCode) {
	switch l {
	case LevelBox:
		g.Boxes = codes
	case LevelCarton:
		g.Cartons = codes
	case LevelPallet:
		g.Pallets = codes
	}
}

// Append adiciona um código ao grupo do seu nível.
func (g *GenerationResult) Append(c GeneratedCode) {
	g.setCodes(c.Level, append(g.Codes(c.Level), c))
}
