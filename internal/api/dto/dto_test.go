package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

func TestValidateReportsJSONFieldNames(t *testing.T) {
	err := Validate(RegisterRequest{Name: "A", Email: "not-an-email", Password: "123"})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeValidation, de.Code)
	assert.Equal(t, "min=2", de.Details["name"])
	assert.Equal(t, "email", de.Details["email"])
	assert.Equal(t, "min=6", de.Details["password"])
	assert.Equal(t, "required", de.Details["office_id"])
}

func TestValidateAcceptsValidPayload(t *testing.T) {
	req := CreateInventoryRequest{Name: "Dell XPS", ItemType: "laptop"}
	assert.NoError(t, Validate(req))

	req.ItemType = "spaceship"
	de := apperrors.ToDomainError(Validate(req))
	require.NotNil(t, de)
	assert.Contains(t, de.Details["item_type"], "oneof")
}

func TestInventoryStatusRequestRejectsIssued(t *testing.T) {
	assert.Error(t, Validate(InventoryStatusRequest{Status: "issued"}))
	assert.NoError(t, Validate(InventoryStatusRequest{Status: "repair"}))
}

func TestEmployeeFieldsParsesDates(t *testing.T) {
	req := EmployeeRequest{FirstName: "Ada", LastName: "L", DateOfBirth: "1990-12-10", Gender: "female"}
	require.NoError(t, Validate(req))

	fields, err := req.Fields()
	require.NoError(t, err)
	require.NotNil(t, fields.DateOfBirth)
	assert.Equal(t, 1990, fields.DateOfBirth.Year())
	assert.Nil(t, fields.HireDate)
	require.NotNil(t, fields.Gender)
	assert.Equal(t, domain.GenderFemale, *fields.Gender)

	resp := NewEmployeeResponse(&domain.Employee{FirstName: "Ada", DateOfBirth: fields.DateOfBirth, Gender: fields.Gender})
	require.NotNil(t, resp.DateOfBirth)
	assert.Equal(t, "1990-12-10", *resp.DateOfBirth)
}

func TestNewListResponseKeepsMeta(t *testing.T) {
	page := repository.NewPage([]domain.Office{{ID: "o1", Name: "HQ"}}, 7, repository.ListFilter{Page: 2, Limit: 5})
	resp := NewListResponse(page, NewOfficeResponse)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "HQ", resp.Data[0].Name)
	assert.Equal(t, PageMeta{Page: 2, Limit: 5, Total: 7}, resp.Meta)
}

func TestUserResponseOmitsHash(t *testing.T) {
	resp := NewUserResponse(&domain.User{ID: "u1", PasswordHash: "secret", RoleName: "admin", Status: domain.UserStatusActive})
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, "active", resp.Status)
}
