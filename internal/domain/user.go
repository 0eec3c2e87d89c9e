package domain

// UserRole é um tipo string para representar o papel do operador no sistema.
type UserRole string

// Papéis aceitos nos tokens emitidos por cmd/token.
const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
	RoleViewer   UserRole = "viewer"
)

// Valid informa se o papel é conhecido.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// Operator identifica quem fez a requisição: o usuário e a empresa dona da cota.
type Operator struct {
	UserID    string
	CompanyID string
	Role      UserRole
}
