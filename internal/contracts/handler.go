package contracts

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/insign-app/backend/internal/mail"
	"github.com/insign-app/backend/pkg/response"
)

// Mailer dispatches the signature-request notification.
type Mailer interface {
	SendContractSignatureMail(p mail.ContractSignatureMail) error
}

// Handler serves the contract signature-request endpoint.
type Handler struct {
	repo    *Repository
	mailer  Mailer
	baseURL string
	logger  *zap.Logger
}

// NewHandler creates a contracts handler. baseURL is the public application
// URL used to build viewer links.
func NewHandler(repo *Repository, mailer Mailer, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, mailer: mailer, baseURL: baseURL, logger: logger}
}

// SendSignatureRequest handles POST /api/contracts/:id/send-signature
// (admin). The viewer link embeds the contract's viewer token; a token is
// minted on first use.
func (h *Handler) SendSignatureRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid contract id")
		return
	}

	var req struct {
		SenderName string `json:"sender_name"`
	}
	_ = c.ShouldBindJSON(&req)

	ct, err := h.repo.GetByID(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		response.NotFound(c, "contract not found")
		return
	}
	if err != nil {
		response.Internal(c, "failed to load contract")
		return
	}
	if ct.SignerEmail == "" {
		response.BadRequest(c, "contract has no signer email")
		return
	}

	token, err := h.viewerToken(c, ct.ID, ct.ViewerToken)
	if err != nil {
		h.logger.Error("viewer token", zap.Int64("contract_id", ct.ID), zap.Error(err))
		response.Internal(c, "failed to prepare viewer link")
		return
	}

	err = h.mailer.SendContractSignatureMail(mail.ContractSignatureMail{
		To:           ct.SignerEmail,
		ContractName: ct.Name,
		Link:         h.baseURL + "/contracts/view/" + token,
		SenderName:   req.SenderName,
	})
	if err != nil {
		response.Internal(c, "failed to send signature request")
		return
	}
	response.OK(c, gin.H{"contract_id": ct.ID, "sent_to": ct.SignerEmail})
}

func (h *Handler) viewerToken(c *gin.Context, id int64, existing *string) (string, error) {
	if existing != nil && *existing != "" {
		return *existing, nil
	}
	token, err := NewViewerToken()
	if err != nil {
		return "", err
	}
	return h.repo.EnsureViewerToken(c.Request.Context(), id, token)
}
