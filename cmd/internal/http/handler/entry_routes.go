package handler

import (
	"context"
	"errors"
	"net/http"

	"devjournal/cmd/internal/contract"
	"devjournal/cmd/internal/domain/entity"
	"devjournal/cmd/internal/service"
	"devjournal/cmd/internal/utils"
	"devjournal/cmd/internal/utils/apierror"
	"github.com/labstack/echo/v4"
)

type EntryService interface {
	ListAll(ctx context.Context) ([]*entity.Entry, error)
	GetByID(ctx context.Context, id string) (*entity.Entry, error)
	Create(ctx context.Context, req *contract.EntryRequest) (*entity.Entry, error)
	Update(ctx context.Context, id string, req *contract.EntryRequest) (*entity.Entry, error)
	Delete(ctx context.Context, id string) error
}

type DefaultEntryRoute struct {
	EntryService EntryService
}

func NewEntryDefault(entryService EntryService) *DefaultEntryRoute {
	return &DefaultEntryRoute{EntryService: entryService}
}

func (n *DefaultEntryRoute) GetEntries(c echo.Context) error {
	entries, err := n.EntryService.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err, service.OpList)
	}

	resp := contract.EntryListEnvelope{Entries: toEntryResponses(entries)}
	return c.JSON(http.StatusOK, &resp)
}

func (n *DefaultEntryRoute) GetEntry(c echo.Context) error {
	entry, err := n.EntryService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, service.OpGet)
	}
	return c.JSON(http.StatusOK, &contract.EntryEnvelope{Entry: toEntryResponse(entry)})
}

func (n *DefaultEntryRoute) CreateEntry(c echo.Context) error {
	var req contract.EntryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	entry, err := n.EntryService.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err, service.OpCreate)
	}
	return c.JSON(http.StatusCreated, &contract.EntryEnvelope{Entry: toEntryResponse(entry)})
}

func (n *DefaultEntryRoute) UpdateEntry(c echo.Context) error {
	var req contract.EntryRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	entry, err := n.EntryService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return respondError(c, err, service.OpUpdate)
	}
	return c.JSON(http.StatusOK, &contract.EntryEnvelope{Entry: toEntryResponse(entry)})
}

func (n *DefaultEntryRoute) DeleteEntry(c echo.Context) error {
	err := n.EntryService.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, service.OpDelete)
	}
	return c.NoContent(http.StatusNoContent)
}

// respondError renders a service error. Store failures only expose the
// generic message of the route they happened on.
func respondError(c echo.Context, err error, action string) error {
	var verr *service.ValidationError

	switch {
	case errors.Is(err, service.ErrNotFound):
		return apierror.Write(c, apierror.EntryNotFoundError)
	case errors.As(err, &verr):
		return apierror.Write(c, apierror.NewValidation(verr.Details))
	}
	return apierror.Write(c, apierror.NewDatabase(action))
}

func bindError(c echo.Context, err error) error {
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
		return err
	}
	return apierror.Write(c, apierror.MalformedBodyError)
}

func toEntryResponse(entry *entity.Entry) *contract.EntryResponse {
	return &contract.EntryResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		CreatedAt: utils.FormatTime(entry.CreatedAt),
		UpdatedAt: utils.FormatTime(entry.UpdatedAt),
	}
}

func toEntryResponses(entries []*entity.Entry) []*contract.EntryResponse {
	resp := make([]*contract.EntryResponse, len(entries))
	for i, entry := range entries {
		resp[i] = toEntryResponse(entry)
	}
	return resp
}
