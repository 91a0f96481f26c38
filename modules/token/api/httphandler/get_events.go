package httphandler

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
)

const (
	defaultEventsLimit = 100
	maxEventsLimit     = 1000
	maxEventsRange     = 10000
)

type getEventsRequest struct {
	Account      string `query:"account"`
	Type         string `query:"type"`
	FromSequence uint64 `query:"fromSequence"`
	ToSequence   uint64 `query:"toSequence"`
	Limit        int32  `query:"limit"`
	Offset       int32  `query:"offset"`

	account   ledger.Address
	eventType ledger.EventType
}

func (r *getEventsRequest) Validate() error {
	var errList []error
	var err error
	if r.Account != "" {
		if r.account, err = parseAddress("account", r.Account); err != nil {
			errList = append(errList, err)
		}
	}
	if r.Type != "" {
		if r.eventType, err = ledger.NewEventTypeFromString(r.Type); err != nil {
			errList = append(errList, errors.Errorf("'type' is not a valid event type: %q", r.Type))
		}
	}
	if r.Account != "" && r.Type != "" {
		errList = append(errList, errors.New("'account' and 'type' filters cannot be combined"))
	}
	if r.Limit < 0 || r.Limit > maxEventsLimit {
		errList = append(errList, errors.Errorf("'limit' must be between 0 and %d", maxEventsLimit))
	}
	if r.Offset < 0 {
		errList = append(errList, errors.New("'offset' must not be negative"))
	}
	if r.ToSequence != 0 && r.ToSequence < r.FromSequence {
		errList = append(errList, errors.New("'toSequence' must not be less than 'fromSequence'"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type eventEntry struct {
	Sequence  uint64           `json:"sequence"`
	Timestamp time.Time        `json:"timestamp"`
	Type      ledger.EventType `json:"type"`
	Payload   ledger.Event     `json:"payload"`
}

type getEventsResult struct {
	List []eventEntry `json:"list"`
}

type getEventsResponse = HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultEventsLimit
	}

	var entries []*entity.JournalEntry
	switch {
	case req.Account != "":
		entries, err = h.usecase.GetEventsByAccount(ctx.UserContext(), req.account, limit, req.Offset)
		if err != nil {
			return errors.Wrap(err, "error during GetEventsByAccount")
		}
	case req.Type != "":
		entries, err = h.usecase.GetEventsByType(ctx.UserContext(), req.eventType, limit, req.Offset)
		if err != nil {
			return errors.Wrap(err, "error during GetEventsByType")
		}
	default:
		fromSequence := req.FromSequence
		if fromSequence == 0 {
			fromSequence = 1
		}
		toSequence := req.ToSequence
		if toSequence == 0 || toSequence-fromSequence >= maxEventsRange {
			toSequence = fromSequence + maxEventsRange - 1
		}
		entries, err = h.usecase.GetEvents(ctx.UserContext(), fromSequence, toSequence)
		if err != nil {
			return errors.Wrap(err, "error during GetEvents")
		}
	}

	resp := getEventsResponse{
		Result: &getEventsResult{
			List: lo.Map(entries, func(entry *entity.JournalEntry, _ int) eventEntry {
				return eventEntry{
					Sequence:  entry.Sequence,
					Timestamp: entry.Timestamp,
					Type:      entry.EventType,
					Payload:   entry.Event,
				}
			}),
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
