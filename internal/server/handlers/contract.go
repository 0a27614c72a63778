package handlers

import (
	"context"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"

	"github.com/iudanet/enable/internal/contract"
	"github.com/iudanet/enable/internal/models"
	"github.com/iudanet/enable/internal/server/middleware"
	"github.com/iudanet/enable/internal/validation"
	"github.com/iudanet/enable/pkg/api"
)

// Contract описывает операции контракта, доступные по HTTP
type Contract interface {
	AddUser(ctx context.Context, id string, privateKey, publicKey []byte) error
	AddLogin(ctx context.Context, userID string, code models.Code) error
	SignMessage(ctx context.Context, code models.Code, message []byte) (*contract.SignedMessage, error)
}

// ContractHandler обрабатывает запросы к контракту
type ContractHandler struct {
	logger   *slog.Logger
	contract Contract
}

// NewContractHandler создает новый handler для операций контракта
func NewContractHandler(logger *slog.Logger, c Contract) *ContractHandler {
	return &ContractHandler{
		logger:   logger,
		contract: c,
	}
}

// operatorContext передает контракту оператора, прошедшего аутентификацию, для журнала
func operatorContext(r *http.Request) context.Context {
	ctx := r.Context()
	if operator, ok := middleware.OperatorFromContext(ctx); ok {
		return contract.WithOperator(ctx, operator)
	}
	return ctx
}

// AddUser обрабатывает POST /api/v1/users
// Регистрация пользователя с ключевой парой
func (h *ContractHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	ctx := operatorContext(r)

	var req api.AddUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode add user request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	// Ни длина, ни наличие ключа не проверяются, некорректный ключ обнаружится при подписи
	privateKey, err := validation.DecodeHex("private_key", req.PrivateKey)
	if err != nil {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	publicKey, err := validation.DecodeHex("public_key", req.PublicKey)
	if err != nil {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	if err := h.contract.AddUser(ctx, req.UserID, privateKey, publicKey); err != nil {
		h.sendContractError(w, err)
		return
	}

	sendJSON(h.logger, w, api.AddUserResponse{UserID: req.UserID}, http.StatusCreated)
}

// AddLogin обрабатывает POST /api/v1/logins
// Выпуск одноразового challenge для пользователя
func (h *ContractHandler) AddLogin(w http.ResponseWriter, r *http.Request) {
	ctx := operatorContext(r)

	var req api.AddLoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode add login request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "invalid request body")
		return
	}

	if err := validation.ValidateUserID(req.UserID); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	code, err := models.ParseCode(req.Code)
	if err != nil {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	if err := h.contract.AddLogin(ctx, req.UserID, code); err != nil {
		h.sendContractError(w, err)
		return
	}

	sendJSON(h.logger, w, api.AddLoginResponse{UserID: req.UserID, Code: code.String()}, http.StatusCreated)
}

// Sign обрабатывает POST /api/v1/sign
// Погашение challenge и подпись сообщения ключом владельца
func (h *ContractHandler) Sign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode sign request", slog.Any("error", err))
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, "invalid request body")
		return
	}

	code, err := models.ParseCode(req.Code)
	if err != nil {
		sendError(h.logger, w, http.StatusBadRequest, api.CodeBadRequest, err.Error())
		return
	}

	signed, err := h.contract.SignMessage(ctx, code, []byte(req.Message))
	if err != nil {
		h.sendContractError(w, err)
		return
	}

	resp := api.SignResponse{
		Signature: hex.EncodeToString(signed.Signature),
		PublicKey: hex.EncodeToString(signed.PublicKey),
		Scheme:    signed.Scheme,
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// sendContractError переводит ошибку контракта в HTTP статус
// Детали внутренних ошибок клиенту не отдаются, их логирует сам контракт
func (h *ContractHandler) sendContractError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contract.ErrUserNotFound):
		sendError(h.logger, w, http.StatusNotFound, api.CodeUserNotFound, "user not found")
	case errors.Is(err, contract.ErrCodeNotFound):
		sendError(h.logger, w, http.StatusNotFound, api.CodeCodeNotFound, "code not found")
	case errors.Is(err, contract.ErrCodeAlreadyUsed):
		sendError(h.logger, w, http.StatusConflict, api.CodeCodeAlreadyUsed, "code already used")
	case errors.Is(err, contract.ErrMalformedKeyMaterial):
		sendError(h.logger, w, http.StatusUnprocessableEntity, api.CodeMalformedKeyMaterial, "stored key material is malformed")
	default:
		sendError(h.logger, w, http.StatusInternalServerError, api.CodeInternal, "internal server error")
	}
}
