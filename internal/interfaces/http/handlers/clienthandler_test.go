package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientdto "github.com/orris-inc/backoffice/internal/application/client/dto"
	"github.com/orris-inc/backoffice/internal/application/client/usecases"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/errors"
)

type mockCreateClientUC struct {
	cmd usecases.CreateClientCommand
	err error
}

func (m *mockCreateClientUC) Execute(ctx context.Context, cmd usecases.CreateClientCommand) (*clientdto.ClientDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &clientdto.ClientDTO{ID: 9, Name: cmd.Name, Email: cmd.Email, Status: "active", CreatedBy: cmd.Scope.UserID}, nil
}

type mockUpdateClientUC struct {
	cmd usecases.UpdateClientCommand
}

func (m *mockUpdateClientUC) Execute(ctx context.Context, cmd usecases.UpdateClientCommand) (*clientdto.ClientDTO, error) {
	m.cmd = cmd
	return &clientdto.ClientDTO{ID: cmd.ClientID}, nil
}

type mockChangeClientStatusUC struct {
	cmd usecases.ChangeClientStatusCommand
}

func (m *mockChangeClientStatusUC) Execute(ctx context.Context, cmd usecases.ChangeClientStatusCommand) (*clientdto.ClientDTO, error) {
	m.cmd = cmd
	return &clientdto.ClientDTO{ID: cmd.ClientID, Status: cmd.Status.String()}, nil
}

type mockGetClientUC struct {
	scope authorization.Scope
	err   error
}

func (m *mockGetClientUC) Execute(ctx context.Context, scope authorization.Scope, clientID uint) (*clientdto.ClientDTO, error) {
	m.scope = scope
	if m.err != nil {
		return nil, m.err
	}
	return &clientdto.ClientDTO{ID: clientID}, nil
}

type mockListClientsUC struct {
	query usecases.ListClientsQuery
}

func (m *mockListClientsUC) Execute(ctx context.Context, query usecases.ListClientsQuery) (*usecases.ListClientsResult, error) {
	m.query = query
	return &usecases.ListClientsResult{Clients: []*clientdto.ClientDTO{}, Page: query.Page, PageSize: query.PageSize}, nil
}

type mockDeleteClientUC struct {
	clientID uint
	err      error
}

func (m *mockDeleteClientUC) Execute(ctx context.Context, scope authorization.Scope, clientID uint) error {
	m.clientID = clientID
	return m.err
}

func TestClientHandler_CreateClient(t *testing.T) {
	mockUC := &mockCreateClientUC{}
	handler := NewClientHandler(mockUC, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	body := map[string]string{"name": "Acme Pvt Ltd", "email": "billing@acme.in", "phone": "+91 98450 00000"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/clients", body)
	testutil.SetAuthContext(c, 7, authorization.RoleUser)

	handler.CreateClient(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(7), mockUC.cmd.Scope.UserID)
	assert.Equal(t, "billing@acme.in", mockUC.cmd.Email)
}

func TestClientHandler_CreateClient_Invalid(t *testing.T) {
	mockUC := &mockCreateClientUC{}
	handler := NewClientHandler(mockUC, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/clients", map[string]string{"name": "Acme", "email": "not-an-email"})
	testutil.SetAuthContext(c, 7, authorization.RoleUser)

	handler.CreateClient(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "email must be a valid email address")
}

func TestClientHandler_CreateClient_DuplicateEmail(t *testing.T) {
	handler := NewClientHandler(&mockCreateClientUC{err: errors.NewConflictError("client email already exists")},
		nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/clients", map[string]string{"name": "Acme", "email": "billing@acme.in"})
	handler.CreateClient(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClientHandler_UpdateClient(t *testing.T) {
	mockUC := &mockUpdateClientUC{}
	handler := NewClientHandler(nil, mockUC, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/clients/9", map[string]string{"phone": "080-4000-1000"})
	testutil.SetURLParam(c, "id", "9")

	handler.UpdateClient(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(9), mockUC.cmd.ClientID)
	require.NotNil(t, mockUC.cmd.Phone)
	assert.Equal(t, "080-4000-1000", *mockUC.cmd.Phone)
	assert.Nil(t, mockUC.cmd.Email)
}

func TestClientHandler_UpdateClientStatus(t *testing.T) {
	mockUC := &mockChangeClientStatusUC{}
	handler := NewClientHandler(nil, nil, mockUC, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/clients/9/status", map[string]string{"status": "suspended"})
	testutil.SetURLParam(c, "id", "9")

	handler.UpdateClientStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, client.StatusSuspended, mockUC.cmd.Status)

	c, w = testutil.NewTestContext(http.MethodPatch, "/api/clients/9/status", map[string]string{"status": "closed"})
	testutil.SetURLParam(c, "id", "9")
	handler.UpdateClientStatus(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientHandler_GetClient_UsesCallerScope(t *testing.T) {
	mockUC := &mockGetClientUC{err: errors.NewForbiddenError("access denied")}
	handler := NewClientHandler(nil, nil, nil, mockUC, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/clients/9", nil)
	testutil.SetAuthContext(c, 8, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "9")

	handler.GetClient(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, mockUC.scope.Restricted())
	assert.Equal(t, uint(8), mockUC.scope.UserID)
}

func TestClientHandler_ListClients(t *testing.T) {
	mockUC := &mockListClientsUC{}
	handler := NewClientHandler(nil, nil, nil, nil, mockUC, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/clients", nil)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{"status": "active", "search": "acme", "page_size": "500"})

	handler.ListClients(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockUC.query.Status)
	assert.Equal(t, client.StatusActive, *mockUC.query.Status)
	assert.Equal(t, "acme", mockUC.query.Search)
	assert.Equal(t, 100, mockUC.query.PageSize)
}

func TestClientHandler_DeleteClient(t *testing.T) {
	mockUC := &mockDeleteClientUC{}
	handler := NewClientHandler(nil, nil, nil, nil, nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/clients/9", nil)
	testutil.SetURLParam(c, "id", "9")

	handler.DeleteClient(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(9), mockUC.clientID)

	blocked := NewClientHandler(nil, nil, nil, nil, nil,
		&mockDeleteClientUC{err: errors.NewConflictError("client has active subscriptions")}, testutil.NewMockLogger())
	c, w = testutil.NewTestContext(http.MethodDelete, "/api/clients/9", nil)
	testutil.SetURLParam(c, "id", "9")
	blocked.DeleteClient(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}
