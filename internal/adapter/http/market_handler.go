package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"bbl-backend/internal/oracle"
)

// FeedTokenHeader authenticates the price-feed collaborator on updates.
const FeedTokenHeader = "X-Feed-Token"

type MarketHandler struct {
	oracle    *oracle.Oracle
	feedToken string
	// onUpdate is invoked after every accepted price write; wired to the
	// liquidation runner's Kick.
	onUpdate func()
}

func NewMarketHandler(o *oracle.Oracle, feedToken string, onUpdate func()) *MarketHandler {
	return &MarketHandler{oracle: o, feedToken: feedToken, onUpdate: onUpdate}
}

func (h *MarketHandler) GetPrice(c echo.Context) error {
	return c.JSON(http.StatusOK, h.oracle.Snapshot())
}

type updatePriceReq struct {
	// bounds are enforced by the oracle itself
	BTCPriceUSD float64 `json:"btc_price_usd"`
}

func (h *MarketHandler) UpdatePrice(c echo.Context) error {
	if h.feedToken != "" {
		got := strings.TrimSpace(c.Request().Header.Get(FeedTokenHeader))
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.feedToken)) != 1 {
			return c.JSON(http.StatusForbidden, ErrorResponse{Error: "invalid feed token"})
		}
	}
	var req updatePriceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.oracle.Update(c.Request().Context(), req.BTCPriceUSD); err != nil {
		return errorJSON(c, err)
	}
	if h.onUpdate != nil {
		h.onUpdate()
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "btc price updated"})
}
