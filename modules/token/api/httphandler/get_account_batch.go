package httphandler

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/usdm-network/ledger-node/common/errs"
	"github.com/usdm-network/ledger-node/modules/token/internal/entity"
	"github.com/usdm-network/ledger-node/modules/token/ledger"
	"golang.org/x/sync/errgroup"
)

type getAccountQuery struct {
	Address      string `json:"address"`
	HistoryLimit int32  `json:"historyLimit"`

	address ledger.Address
}

type getAccountsBatchRequest struct {
	Queries []getAccountQuery `json:"queries"`
}

const getAccountsBatchMaxQueries = 100

func (r *getAccountsBatchRequest) Validate() error {
	var errList []error
	if len(r.Queries) == 0 {
		errList = append(errList, errors.New("at least one query is required"))
	}
	if len(r.Queries) > getAccountsBatchMaxQueries {
		errList = append(errList, errors.Errorf("cannot exceed %d queries", getAccountsBatchMaxQueries))
	}
	for i := range r.Queries {
		query := &r.Queries[i]
		var err error
		if query.address, err = parseAddress("address", query.Address); err != nil {
			errList = append(errList, errors.Errorf("queries[%d]: %v", i, err))
		}
		if query.HistoryLimit < 0 {
			errList = append(errList, errors.Errorf("queries[%d]: 'historyLimit' must be non-negative", i))
		}
		if query.HistoryLimit > maxEventsLimit {
			errList = append(errList, errors.Errorf("queries[%d]: 'historyLimit' cannot exceed %d", i, maxEventsLimit))
		}
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getAccountBatchEntry struct {
	getAccountResult
	RecentEvents []eventEntry `json:"recentEvents,omitempty"`
}

type getAccountsBatchResult struct {
	List []*getAccountBatchEntry `json:"list"`
}

type getAccountsBatchResponse = HttpResponse[getAccountsBatchResult]

func (h *HttpHandler) GetAccountsBatch(ctx *fiber.Ctx) (err error) {
	var req getAccountsBatchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	processQuery := func(ctx context.Context, query getAccountQuery) (*getAccountBatchEntry, error) {
		status := h.usecase.GetComplianceStatus(query.address)
		entry := getAccountBatchEntry{
			getAccountResult: getAccountResult{
				Address:         query.address,
				Balance:         newAmount(h.usecase.BalanceOf(query.address)),
				Roles:           h.usecase.GetAccountRoles(query.address),
				Blacklisted:     status.Blacklisted,
				BlacklistReason: status.Reason,
			},
		}
		if query.HistoryLimit > 0 {
			events, err := h.usecase.GetEventsByAccount(ctx, query.address, query.HistoryLimit, 0)
			if err != nil {
				return nil, errors.Wrap(err, "error during GetEventsByAccount")
			}
			entry.RecentEvents = lo.Map(events, func(e *entity.JournalEntry, _ int) eventEntry {
				return eventEntry{
					Sequence:  e.Sequence,
					Timestamp: e.Timestamp,
					Type:      e.EventType,
					Payload:   e.Event,
				}
			})
		}
		return &entry, nil
	}

	results := make([]*getAccountBatchEntry, len(req.Queries))
	eg, ectx := errgroup.WithContext(ctx.UserContext())
	for i, query := range req.Queries {
		i := i
		query := query
		eg.Go(func() error {
			result, err := processQuery(ectx, query)
			if err != nil {
				return errors.Wrapf(err, "error during processQuery for query %d", i)
			}
			results[i] = result
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return errors.WithStack(err)
	}

	resp := getAccountsBatchResponse{
		Result: &getAccountsBatchResult{
			List: results,
		},
	}

	return errors.WithStack(ctx.JSON(resp))
}
