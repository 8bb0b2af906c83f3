package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"cardflow/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// fieldLabel turns a struct field name into a human label,
// e.g. "BackgroundColor" -> "Background color", "WorkspaceID" -> "Workspace ID".
func fieldLabel(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte(' ')
			if i+1 < len(runes) && unicode.IsUpper(runes[i+1]) {
				// acronym run, keep uppercase
				b.WriteRune(r)
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// validationMessage maps a binding error to a message naming the offending
// field. Falls back to a generic message for malformed JSON.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}

	fe := verrs[0]
	label := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email"
	case "min":
		if fe.Field() == "Password" {
			return fmt.Sprintf("Password must be at least %s characters long", fe.Param())
		}
		return label + " cannot be empty"
	case "eqfield":
		return "Passwords do not match"
	case "hexcolor":
		return label + " must be a valid hex color"
	case "oneof":
		return "Theme must be either light or dark"
	}
	return label + " is invalid"
}

// currentUserID extracts the authenticated user ID set by the auth
// middleware, writing the error response itself on failure.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return uuid.Nil, false
	}
	return userID, true
}
