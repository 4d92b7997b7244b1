package scanexplorer

import (
	"context"

	"github.com/kailas-cloud/scanexplorer/internal/domain/search/request"
	"github.com/kailas-cloud/scanexplorer/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/scanexplorer/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	collectionsFn func(ctx context.Context, req *request.Request) (result.Listing[result.Collection], error)
	articlesFn    func(ctx context.Context, req *request.Request) (result.Listing[result.Article], error)
	pagesFn       func(ctx context.Context, req *request.Request) (result.Listing[result.Page], error)
	ocrFn         func(ctx context.Context, req request.OCR) (string, error)
	highlightFn   func(ctx context.Context, req request.Highlight) (result.Highlights, error)
}

func (m *mockSearchUC) Collections(
	ctx context.Context, req *request.Request,
) (result.Listing[result.Collection], error) {
	return m.collectionsFn(ctx, req)
}

func (m *mockSearchUC) Articles(ctx context.Context, req *request.Request) (result.Listing[result.Article], error) {
	return m.articlesFn(ctx, req)
}

func (m *mockSearchUC) Pages(ctx context.Context, req *request.Request) (result.Listing[result.Page], error) {
	return m.pagesFn(ctx, req)
}

func (m *mockSearchUC) OCR(ctx context.Context, req request.OCR) (string, error) {
	return m.ocrFn(ctx, req)
}

func (m *mockSearchUC) Highlight(ctx context.Context, req request.Highlight) (result.Highlights, error) {
	return m.highlightFn(ctx, req)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

// --- helpers ---

func testClient(searchSvc searchUseCase) *Client {
	return &Client{searchSvc: searchSvc}
}
