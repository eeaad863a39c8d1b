package handler

import (
	"prepdeck/internal/dto"
	"prepdeck/internal/middleware"
	"prepdeck/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BankHandler handles question bank HTTP requests.
type BankHandler struct {
	bankService service.BankService
}

// NewBankHandler creates a new BankHandler instance.
func NewBankHandler(bankService service.BankService) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// Create godoc
// @Summary Create a question bank
// @Tags banks
// @Accept json
// @Produce json
// @Param request body dto.CreateBankRequest true "Bank definition"
// @Success 201 {object} dto.BankResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /banks [post]
func (h *BankHandler) Create(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.CreateBankRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	bank, err := h.bankService.Create(c.Context(), userID, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Question bank created successfully",
		"bank":    bank,
	})
}

// GetMine godoc
// @Summary List the authenticated user's banks
// @Tags banks
// @Produce json
// @Success 200 {object} dto.BankListResponse
// @Router /banks/my [get]
func (h *BankHandler) GetMine(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	banks, err := h.bankService.ListMine(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.BankListResponse{Banks: banks})
}

// GetPublic godoc
// @Summary List public banks
// @Tags banks
// @Produce json
// @Success 200 {object} dto.BankListResponse
// @Router /banks/public [get]
func (h *BankHandler) GetPublic(c *fiber.Ctx) error {
	banks, err := h.bankService.ListPublic(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(dto.BankListResponse{Banks: banks})
}

// GetByID godoc
// @Summary Get one bank
// @Tags banks
// @Produce json
// @Param bankId path string true "Bank ID"
// @Success 200 {object} dto.BankResponse
// @Failure 403 {object} middleware.ErrorResponse "Private bank of another user"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /banks/{bankId} [get]
func (h *BankHandler) GetByID(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	bank, err := h.bankService.GetByID(c.Context(), userID, c.Params("bankId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"bank": bank})
}

// UpdateVisibility godoc
// @Summary Toggle a bank between public and private
// @Tags banks
// @Accept json
// @Produce json
// @Param bankId path string true "Bank ID"
// @Param request body dto.UpdateVisibilityRequest true "Visibility flag"
// @Success 200 {object} dto.BankResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /banks/{bankId}/visibility [patch]
func (h *BankHandler) UpdateVisibility(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.UpdateVisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	bank, err := h.bankService.UpdateVisibility(c.Context(), userID, c.Params("bankId"), req.IsPublic)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Visibility updated successfully",
		"bank":    bank,
	})
}

// AddQuestion godoc
// @Summary Add a question to a bank
// @Tags banks
// @Accept json
// @Produce json
// @Param bankId path string true "Bank ID"
// @Param request body dto.BankQuestionRequest true "Question to add"
// @Success 200 {object} dto.BankResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /banks/{bankId}/questions [post]
func (h *BankHandler) AddQuestion(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.BankQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	bank, err := h.bankService.AddQuestion(c.Context(), userID, c.Params("bankId"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Question added successfully",
		"bank":    bank,
	})
}

// QuickSave godoc
// @Summary Save a session question into a bank
// @Tags banks
// @Accept json
// @Produce json
// @Param request body dto.QuickSaveRequest true "Question to save"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} middleware.ErrorResponse "Question already in bank"
// @Router /banks/quick-save [post]
func (h *BankHandler) QuickSave(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	var req dto.QuickSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.bankService.QuickSave(c.Context(), userID, req); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Question saved to bank successfully"})
}

// Delete godoc
// @Summary Delete a bank
// @Tags banks
// @Produce json
// @Param bankId path string true "Bank ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /banks/{bankId} [delete]
func (h *BankHandler) Delete(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	if err := h.bankService.Delete(c.Context(), userID, c.Params("bankId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Question bank deleted successfully"})
}
