package api

import (
	"github.com/usdm-network/ledger-node/modules/token/api/httphandler"
	"github.com/usdm-network/ledger-node/modules/token/usecase"
)

func NewHTTPHandler(usecase *usecase.Usecase) *httphandler.HttpHandler {
	return httphandler.New(usecase)
}
