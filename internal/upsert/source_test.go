package upsert

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/mock/gomock"
	check "gopkg.in/check.v1"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/infrastructure/storage/memory"
	"ProfileScanner/internal/mocks"
)

var _ = check.Suite(new(SourceTestSuite))

type SourceTestSuite struct{}

func (s *SourceTestSuite) TestSearchSourceStopsAtMaxResults(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	provider := mocks.NewMockSearchProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), "founder", 0).Return([]domain.SourceRecord{{Link: "a"}}, nil)

	src := &SearchSource{Provider: provider, Query: "founder", MaxResults: 10}
	c.Assert(src.PageSize(), check.Equals, SearchPageSize)

	page, err := src.FetchPage(context.TODO(), 0, 10)
	c.Assert(err, check.IsNil)
	c.Assert(page, check.HasLen, 1)

	page, err = src.FetchPage(context.TODO(), 10, 10)
	c.Assert(err, check.IsNil)
	c.Assert(page, check.HasLen, 0)
}

func (s *SourceTestSuite) TestSearchSourceMarksProviderFailuresAsSkipped(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	provider := mocks.NewMockSearchProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), "founder", 20).Return(nil, errors.New("429 too many requests"))

	src := &SearchSource{Provider: provider, Query: "founder"}
	_, err := src.FetchPage(context.TODO(), 20, 10)
	c.Assert(errors.Is(err, ErrPageSkipped), check.Equals, true)
}

func (s *SourceTestSuite) TestSearchSourceReturnsContextErrors(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.TODO())
	provider := mocks.NewMockSearchProvider(ctrl)
	provider.EXPECT().Search(gomock.Any(), "founder", 0).DoAndReturn(
		func(context.Context, string, int) ([]domain.SourceRecord, error) {
			cancel()
			return nil, errors.New("request canceled")
		},
	)

	src := &SearchSource{Provider: provider, Query: "founder"}
	_, err := src.FetchPage(ctx, 0, 10)
	c.Assert(err, check.Equals, context.Canceled)
}

func (s *SourceTestSuite) TestTeeSourceStoresLinkedRows(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	sink := mocks.NewMockSourceWriter(ctrl)
	sink.EXPECT().UpsertSource(gomock.Any(), []domain.SourceRecord{{Link: "a"}}).Return(nil)

	tee := &TeeSource{
		Source: &sliceSource{records: []domain.SourceRecord{{Link: "a"}, {Title: "no link"}}},
		Sink:   sink,
	}
	c.Assert(tee.PageSize(), check.Equals, 0)

	page, err := tee.FetchPage(context.TODO(), 0, 10)
	c.Assert(err, check.IsNil)
	c.Assert(page, check.HasLen, 2)

	// empty pages never reach the sink
	page, err = tee.FetchPage(context.TODO(), 10, 10)
	c.Assert(err, check.IsNil)
	c.Assert(page, check.HasLen, 0)
}

func (s *SourceTestSuite) TestTeeSourceSinkFailureIsFatal(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	sink := mocks.NewMockSourceWriter(ctrl)
	sink.EXPECT().UpsertSource(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	tee := &TeeSource{Source: &sliceSource{records: makeRecords(3)}, Sink: sink}
	_, err := tee.FetchPage(context.TODO(), 0, 10)
	c.Assert(err, check.ErrorMatches, "store raw page at offset 0: disk full")
	c.Assert(errors.Is(err, ErrPageSkipped), check.Equals, false)
}

func (s *SourceTestSuite) TestTeeSourceForwardsPageSize(c *check.C) {
	tee := &TeeSource{Source: &SearchSource{}}
	c.Assert(tee.PageSize(), check.Equals, SearchPageSize)
}

func (s *SourceTestSuite) TestLoadSnapshotReadsEveryPage(c *check.C) {
	store := memory.NewStore()
	rows := make([]domain.ProcessedRecord, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, domain.ProcessedRecord{Link: fmt.Sprintf("link-%02d", i)})
	}
	c.Assert(store.UpsertProcessed(context.TODO(), rows), check.IsNil)

	snapshot, err := LoadSnapshot(context.TODO(), store, 5)
	c.Assert(err, check.IsNil)
	c.Assert(snapshot, check.HasLen, 12)
	c.Assert(snapshot["link-11"].Link, check.Equals, "link-11")
}

func (s *SourceTestSuite) TestLoadSnapshotWrapsReaderErrors(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	reader := mocks.NewMockProcessedReader(ctrl)
	gomock.InOrder(
		reader.EXPECT().ProcessedPage(gomock.Any(), 0, 2).Return([]domain.ProcessedRecord{{Link: "a"}, {Link: "b"}}, nil),
		reader.EXPECT().ProcessedPage(gomock.Any(), 2, 2).Return(nil, errors.New("timeout")),
	)

	_, err := LoadSnapshot(context.TODO(), reader, 2)
	c.Assert(err, check.ErrorMatches, "load snapshot at offset 2: timeout")
}
