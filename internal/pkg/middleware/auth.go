package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gotrace/internal/domain"
	apperror "gotrace/internal/errors"
	"gotrace/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Context Keys devem ser não-exportadas ou de um tipo único para evitar conflito.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware cria uma função de middleware que valida um JWT e anexa o
// operador (usuário, empresa e papel) ao contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				WriteError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				WriteError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			// 3. Anexar o operador ao contexto
			op := domain.Operator{
				UserID:    claims.UserID,
				CompanyID: claims.CompanyID,
				Role:      domain.UserRole(claims.Role),
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, op)

			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetOperatorFromContext é uma função utilitária para extrair o operador no handler.
func GetOperatorFromContext(ctx context.Context) (domain.Operator, bool) {
	op, ok := ctx.Value(UserClaimsKey).(domain.Operator)
	return op, ok
}

// PermissionMiddleware restringe o recurso aos papéis informados.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			op, ok := GetOperatorFromContext(r.Context())
			if !ok {
				WriteError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
				return
			}

			for _, requiredRole := range requiredRoles {
				if op.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeJSON(w, http.StatusForbidden, domain.ErrorResponse{
				Code:     http.StatusForbidden,
				Category: "FORBIDDEN",
				Reason:   apperror.ReasonUnauthorized,
				Message:  "Acesso negado. Você não tem a permissão necessária.",
			})
		}
	}
}

// WriteError grava o corpo de erro padronizado a partir de um AppError.
func WriteError(w http.ResponseWriter, err error) {
	status, category, reason, message := apperror.MapToHTTPStatus(err)
	writeJSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Reason:   reason,
		Message:  message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
