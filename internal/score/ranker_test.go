package score

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	check "gopkg.in/check.v1"

	"ProfileScanner/internal/domain"
	"ProfileScanner/internal/infrastructure/storage/memory"
	"ProfileScanner/internal/mocks"
)

var _ = check.Suite(new(RankerTestSuite))

func Test(t *testing.T) {
	check.TestingT(t)
}

type RankerTestSuite struct {
	store *memory.Store
}

func (s *RankerTestSuite) SetUpTest(c *check.C) {
	ctx := context.TODO()
	s.store = memory.NewStore()
	c.Assert(s.store.UpsertProcessed(ctx, []domain.ProcessedRecord{
		{Link: "a", OGDescription: "Serial founder, two exits, Stanford CS"},
		{Link: "b", OGDescription: "Junior analyst"},
		{Link: "c", OGDescription: "Already scored"},
	}), check.IsNil)
	c.Assert(s.store.PatchProcessed(ctx, "c", domain.Patch{
		domain.ColumnRawTotalScore: 50.0,
		domain.ColumnTotalScore:    100.0,
	}), check.IsNil)
}

func (s *RankerTestSuite) TestRunScoresBatchAgainstPopulation(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	client := mocks.NewMockCompletionClient(ctrl)
	client.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req domain.CompletionRequest) (string, error) {
			c.Assert(strings.Contains(req.Prompt, `"id":"a"`), check.Equals, true)
			c.Assert(strings.Contains(req.Prompt, `"id":"c"`), check.Equals, false)
			c.Assert(req.MaxTokens, check.Equals, 9999)
			return "```json\n" + `[
			  {"id":"a","scores":{"previous_entrepreneurial_success":80,"educational_background":60,"work_experience":40},
			   "reasons":{"previous_entrepreneurial_success":"two exits","educational_background":"Stanford"}},
			  {"id":"b","scores":{"previous_entrepreneurial_success":10,"educational_background":10,"work_experience":10},
			   "reasons":{}},
			  {"id":"x"},
			  {"id":"zzz","scores":{"work_experience":99},"reasons":{}}
			]` + "\n```", nil
		},
	)

	ranker, err := NewRanker(Config{Store: s.store, Client: client, Limit: 50, MaxTokens: 9999})
	c.Assert(err, check.IsNil)

	report, err := ranker.Run(context.TODO())
	c.Assert(err, check.IsNil)
	c.Assert(report.Selected, check.Equals, 2)
	c.Assert(report.Scored, check.Equals, 2)
	c.Assert(report.Malformed, check.Equals, 2)

	rows, err := s.store.FindProcessed(context.TODO(), domain.Query{Present: []string{domain.ColumnTotalScore}})
	c.Assert(err, check.IsNil)
	c.Assert(rows, check.HasLen, 3)

	a, b := rows[0], rows[1]
	c.Assert(*a.RawTotalScore, check.Equals, 62.0)
	c.Assert(*a.TotalScore, check.Equals, 100.0)
	c.Assert(a.ScoringReason, check.Equals, strings.Join([]string{
		"previous entrepreneurial success: 80/100 - two exits",
		"educational background: 60/100 - Stanford",
		"work experience: 40/100 - No reason provided",
	}, "\n"))

	c.Assert(*b.RawTotalScore, check.Equals, 10.0)
	c.Assert(math.Abs(*b.TotalScore-100.0/3) < 1e-9, check.Equals, true)
}

func (s *RankerTestSuite) TestRunWithNothingToScoreMakesNoCall(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	ranker, err := NewRanker(Config{
		Store:  s.store,
		Client: mocks.NewMockCompletionClient(ctrl),
		Limit:  10,
		Region: "Europe",
	})
	c.Assert(err, check.IsNil)

	report, err := ranker.Run(context.TODO())
	c.Assert(err, check.IsNil)
	c.Assert(report.Selected, check.Equals, 0)
}

func (s *RankerTestSuite) TestRunFiltersByRegionAndCountry(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	store := mocks.NewMockRecordStore(ctrl)
	store.EXPECT().FindProcessed(gomock.Any(), domain.Query{
		Null:   []string{domain.ColumnTotalScore},
		Equals: map[string]any{domain.ColumnRegion: "Europe", domain.ColumnCountry: "Germany"},
		Limit:  50,
	}).Return(nil, nil)

	ranker, err := NewRanker(Config{
		Store:   store,
		Client:  mocks.NewMockCompletionClient(ctrl),
		Limit:   50,
		Region:  "Europe",
		Country: "Germany",
	})
	c.Assert(err, check.IsNil)

	_, err = ranker.Run(context.TODO())
	c.Assert(err, check.IsNil)
}

func (s *RankerTestSuite) TestStoreWriteFailureAbortsTheBatch(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	store := mocks.NewMockRecordStore(ctrl)
	store.EXPECT().FindProcessed(gomock.Any(), gomock.Any()).Return([]domain.ProcessedRecord{
		{Link: "a", OGDescription: "Founder"},
		{Link: "b", OGDescription: "Analyst"},
	}, nil)
	store.EXPECT().RawScores(gomock.Any()).Return(nil, nil)
	store.EXPECT().PatchProcessed(gomock.Any(), "a", gomock.Any()).Return(errors.New("connection refused"))

	client := mocks.NewMockCompletionClient(ctrl)
	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return(`[
	  {"id":"a","scores":{"work_experience":50},"reasons":{}},
	  {"id":"b","scores":{"work_experience":20},"reasons":{}}
	]`, nil)

	ranker, err := NewRanker(Config{Store: store, Client: client, Limit: 5})
	c.Assert(err, check.IsNil)

	report, err := ranker.Run(context.TODO())
	c.Assert(err, check.ErrorMatches, "update score for a: connection refused")
	c.Assert(report.Scored, check.Equals, 0)
}

func (s *RankerTestSuite) TestUnparseableReplyIsAnError(c *check.C) {
	ctrl := gomock.NewController(c)
	defer ctrl.Finish()

	client := mocks.NewMockCompletionClient(ctrl)
	client.EXPECT().Complete(gomock.Any(), gomock.Any()).Return("Sorry, I cannot help with that.", nil)

	ranker, err := NewRanker(Config{Store: s.store, Client: client, Limit: 5})
	c.Assert(err, check.IsNil)

	_, err = ranker.Run(context.TODO())
	c.Assert(errors.Is(err, ErrUnparseableReply), check.Equals, true)

	scores, err := s.store.RawScores(context.TODO())
	c.Assert(err, check.IsNil)
	c.Assert(scores, check.DeepEquals, []float64{50})
}

func TestRawScore(t *testing.T) {
	t.Parallel()

	got := RawScore(map[string]float64{
		CategoryEntrepreneurial: 33,
		CategoryEducation:       71,
		CategoryWork:            12,
		"unused":                100,
	}, DefaultCategories())
	// 13.2 + 21.3 + 3.6
	if got != 38.1 {
		t.Fatalf("unexpected raw score: %v", got)
	}

	if got := RawScore(map[string]float64{CategoryWork: 55.56}, DefaultCategories()); got != 16.67 {
		t.Fatalf("expected rounding to two decimals, got %v", got)
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	population := []float64{10, 20, 20, 40}
	cases := map[float64]float64{5: 0, 10: 25, 20: 75, 40: 100}
	for raw, want := range cases {
		if got := Percentile(raw, population); got != want {
			t.Fatalf("Percentile(%v) = %v, want %v", raw, got, want)
		}
	}
	if Percentile(10, nil) != 0 {
		t.Fatal("empty population must yield 0")
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("abcdef", 3); got != "abc..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate("äöü", 3); got != "äöü" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate(strings.Repeat("x", 1300), DefaultDescriptionLimit); len(got) != 1253 {
		t.Fatalf("unexpected length: %d", len(got))
	}
}
