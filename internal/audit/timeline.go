package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TimelineFilters narrows the timeline query.
type TimelineFilters struct {
	Page     int
	PageSize int
}

// PagingInfo describes the returned window.
type PagingInfo struct {
	Page     int
	PageSize int
	HasNext  bool
	PrevPage int
	NextPage int
}

// Result wraps timeline rows with paging information.
type Result struct {
	Rows   []Event
	Paging PagingInfo
}

// Timeline returns a tenant's audit events with paging. One extra row is
// fetched to decide HasNext without a count query.
func (r *Recorder) Timeline(ctx context.Context, tenantID uuid.UUID, filters TimelineFilters) (Result, error) {
	if r == nil || r.store == nil {
		return Result{}, fmt.Errorf("audit: store not configured")
	}
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 50 {
		pageSize = 50
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize
	rows, err := r.store.TimelineWindow(ctx, tenantID, pageSize+1, offset)
	if err != nil {
		return Result{}, err
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}
	paging := PagingInfo{Page: page, PageSize: pageSize, HasNext: hasNext}
	if page > 1 {
		paging.PrevPage = page - 1
	}
	if hasNext {
		paging.NextPage = page + 1
	}
	return Result{Rows: rows, Paging: paging}, nil
}
