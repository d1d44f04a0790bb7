package duel

import (
	"context"
	"errors"
	"testing"
	"time"

	chanceMocks "github.com/KirkDiggler/faceoff/internal/chance/mocks"
	"github.com/KirkDiggler/faceoff/internal/common/clock/mocks"
	"github.com/KirkDiggler/faceoff/internal/metrics"
	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	notifyMocks "github.com/KirkDiggler/faceoff/internal/notify/mocks"
	duelRepo "github.com/KirkDiggler/faceoff/internal/repositories/duel"
	duelMocks "github.com/KirkDiggler/faceoff/internal/repositories/duel/mocks"
	participantRepo "github.com/KirkDiggler/faceoff/internal/repositories/participant"
	participantMocks "github.com/KirkDiggler/faceoff/internal/repositories/participant/mocks"
	"github.com/KirkDiggler/faceoff/internal/services/matchmaker"
	matchmakerMocks "github.com/KirkDiggler/faceoff/internal/services/matchmaker/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

type DuelServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockDuelRepo   *duelMocks.MockRepository
	mockDirectory  *participantMocks.MockRepository
	mockMatchmaker *matchmakerMocks.MockService
	mockDispatcher *notifyMocks.MockDispatcher
	mockRandom     *chanceMocks.MockSource
	mockClock      *mocks.MockClock
	duelService    Service
	ctx            context.Context

	// Test data
	testTime   time.Time
	testDuelID string
	xena       *models.Participant
	yuri       *models.Participant
	profiles   map[string]*models.Participant

	// Payloads handed to the dispatcher
	sent []*notify.SendInput
}

func (s *DuelServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDuelRepo = duelMocks.NewMockRepository(s.mockCtrl)
	s.mockDirectory = participantMocks.NewMockRepository(s.mockCtrl)
	s.mockMatchmaker = matchmakerMocks.NewMockService(s.mockCtrl)
	s.mockDispatcher = notifyMocks.NewMockDispatcher(s.mockCtrl)
	s.mockRandom = chanceMocks.NewMockSource(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testDuelID = "test-duel-id"
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.xena = &models.Participant{ID: "x", Name: "Xena", DeviceToken: "device-x", Participating: true}
	s.yuri = &models.Participant{ID: "y", Name: "Yuri", DeviceToken: "device-y", Participating: true}
	s.profiles = map[string]*models.Participant{"x": s.xena, "y": s.yuri}
	s.sent = nil

	s.mockDirectory.EXPECT().
		GetParticipant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *participantRepo.GetParticipantInput) (*models.Participant, error) {
			p, ok := s.profiles[input.ParticipantID]
			if !ok {
				return nil, participantRepo.ErrParticipantNotFound
			}
			return p, nil
		}).
		AnyTimes()

	svc, err := New(&Config{
		DuelRepo:   s.mockDuelRepo,
		Directory:  s.mockDirectory,
		Matchmaker: s.mockMatchmaker,
		Dispatcher: s.mockDispatcher,
		Random:     s.mockRandom,
		Clock:      s.mockClock,
	})
	s.Require().NoError(err)
	s.duelService = svc
}

func (s *DuelServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDuelServiceSuite(t *testing.T) {
	defer goleak.VerifyNone(t)
	suite.Run(t, new(DuelServiceTestSuite))
}

// duel returns a stored duel between Xena (A) and Yuri (B)
func (s *DuelServiceTestSuite) duel(state models.DuelState, version int64) *models.Duel {
	return &models.Duel{
		ID:           s.testDuelID,
		Version:      version,
		ParticipantA: models.Contender{ID: "x", Name: "Xena", InteractedAt: models.NoInteraction},
		ParticipantB: models.Contender{ID: "y", Name: "Yuri", InteractedAt: models.NoInteraction},
		State:        state,
		CreatedAt:    s.testTime,
		UpdatedAt:    s.testTime,
	}
}

func (s *DuelServiceTestSuite) inProgress(version int64) *models.Duel {
	d := s.duel(models.DuelStateInProgress, version)
	d.ParticipantA.Accepted = true
	d.ParticipantB.Accepted = true
	return d
}

func (s *DuelServiceTestSuite) expectGet(d *models.Duel) {
	s.mockDuelRepo.EXPECT().
		GetDuel(gomock.Any(), &duelRepo.GetDuelInput{DuelID: s.testDuelID}).
		Return(d, nil)
}

// expectCommit accepts the next update and hands the written duel to check
func (s *DuelServiceTestSuite) expectCommit(check func(written *models.Duel, expectedVersion int64)) {
	s.mockDuelRepo.EXPECT().
		UpdateDuel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *duelRepo.UpdateDuelInput) (*models.Duel, error) {
			if check != nil {
				check(input.Duel, input.ExpectedVersion)
			}
			written := input.Duel.Copy()
			written.Version = input.ExpectedVersion + 1
			return written, nil
		})
}

func (s *DuelServiceTestSuite) expectSends(n int) {
	s.mockDispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *notify.SendInput) error {
			s.sent = append(s.sent, input)
			return nil
		}).
		Times(n)
}

func (s *DuelServiceTestSuite) sentTo(participantID string) []*models.Payload {
	var payloads []*models.Payload
	for _, in := range s.sent {
		if in.Recipient.ID == participantID {
			payloads = append(payloads, in.Payload)
		}
	}
	return payloads
}

func (s *DuelServiceTestSuite) TestCreateDuelProposesToBoth() {
	s.mockDuelRepo.EXPECT().
		CreateDuel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *duelRepo.CreateDuelInput) (*models.Duel, error) {
			d := input.Duel
			s.Equal(models.DuelStateInitializing, d.State)
			s.False(d.ParticipantA.Accepted)
			s.False(d.ParticipantB.Accepted)
			s.Equal(models.NoInteraction, d.ParticipantA.InteractedAt)
			s.Equal(models.NoInteraction, d.ParticipantB.InteractedAt)
			created := d.Copy()
			created.ID = s.testDuelID
			created.Version = 1
			return created, nil
		})
	s.expectSends(2)

	out, err := s.duelService.CreateDuel(s.ctx, &CreateDuelInput{ParticipantA: s.xena, ParticipantB: s.yuri})
	s.Require().NoError(err)
	s.Equal(s.testDuelID, out.Duel.ID)

	for _, id := range []string{"x", "y"} {
		payloads := s.sentTo(id)
		s.Require().Len(payloads, 1)
		p := payloads[0]
		s.Equal(models.PayloadTypeGame, p.Type)
		s.Equal(models.PayloadSubtypeProposed, p.Subtype)
		s.Equal(s.testDuelID, p.SessionID)
		s.Equal("x", p.ParticipantAID)
		s.Equal("y", p.ParticipantBID)
		s.Equal("Xena", p.ParticipantAName)
		s.Equal("Yuri", p.ParticipantBName)
	}
}

func (s *DuelServiceTestSuite) TestCreateDuelWithSelf() {
	_, err := s.duelService.CreateDuel(s.ctx, &CreateDuelInput{ParticipantA: s.xena, ParticipantB: s.xena})
	s.Equal(ErrSameParticipant, err)
}

func (s *DuelServiceTestSuite) expectPresence() {
	s.mockDirectory.EXPECT().
		UpdatePresence(gomock.Any(), &participantRepo.UpdatePresenceInput{
			ParticipantID: "x",
			LastSeen:      s.testTime.Unix(),
			Participating: true,
		}).
		Return(nil)
}

func (s *DuelServiceTestSuite) TestRequestDuelMatchesAndCreates() {
	s.expectPresence()
	s.mockMatchmaker.EXPECT().
		FindOpponent(gomock.Any(), &matchmaker.FindOpponentInput{Requester: s.xena}).
		Return(&matchmaker.FindOpponentOutput{Opponent: s.yuri, Candidates: 1}, nil)
	s.mockDuelRepo.EXPECT().
		CreateDuel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *duelRepo.CreateDuelInput) (*models.Duel, error) {
			created := input.Duel.Copy()
			created.ID = s.testDuelID
			created.Version = 1
			return created, nil
		})
	s.expectSends(2)

	out, err := s.duelService.RequestDuel(s.ctx, &RequestDuelInput{ParticipantID: "x"})
	s.Require().NoError(err)
	s.Equal("x", out.Duel.ParticipantA.ID)
	s.Equal("y", out.Duel.ParticipantB.ID)
	s.Equal("y", out.Opponent.ID)
}

func (s *DuelServiceTestSuite) TestRequestDuelUnknownParticipant() {
	_, err := s.duelService.RequestDuel(s.ctx, &RequestDuelInput{ParticipantID: "ghost"})
	s.Equal(ErrParticipantNotFound, err)
}

func (s *DuelServiceTestSuite) TestRequestDuelWithoutOpponentCreatesNothing() {
	s.expectPresence()
	s.mockMatchmaker.EXPECT().
		FindOpponent(gomock.Any(), gomock.Any()).
		Return(nil, matchmaker.ErrNoOpponent)

	_, err := s.duelService.RequestDuel(s.ctx, &RequestDuelInput{ParticipantID: "x"})
	s.True(errors.Is(err, matchmaker.ErrNoOpponent))
}

func (s *DuelServiceTestSuite) TestRequestDuelSurvivesPresenceFailure() {
	s.mockDirectory.EXPECT().
		UpdatePresence(gomock.Any(), gomock.Any()).
		Return(errors.New("redis down"))
	s.mockMatchmaker.EXPECT().
		FindOpponent(gomock.Any(), gomock.Any()).
		Return(nil, matchmaker.ErrNoOpponent)

	_, err := s.duelService.RequestDuel(s.ctx, &RequestDuelInput{ParticipantID: "x"})
	s.True(errors.Is(err, matchmaker.ErrNoOpponent))
}

func (s *DuelServiceTestSuite) TestFirstAcceptOnlySetsFlag() {
	s.expectGet(s.duel(models.DuelStateInitializing, 1))
	s.expectCommit(func(written *models.Duel, expectedVersion int64) {
		s.Equal(int64(1), expectedVersion)
		s.True(written.ParticipantA.Accepted)
		s.False(written.ParticipantB.Accepted)
		s.Equal(models.DuelStateInitializing, written.State)
	})

	out, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.False(out.Established)
	s.Equal(int64(2), out.Duel.Version)
}

func (s *DuelServiceTestSuite) TestSecondAcceptEstablishes() {
	stored := s.duel(models.DuelStateInitializing, 2)
	stored.ParticipantB.Accepted = true
	s.expectGet(stored)
	s.expectCommit(func(written *models.Duel, _ int64) {
		s.Equal(models.DuelStateInProgress, written.State)
	})
	s.expectSends(2)

	out, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.True(out.Established)
	s.Equal(models.DuelStateInProgress, out.Duel.State)

	for _, id := range []string{"x", "y"} {
		payloads := s.sentTo(id)
		s.Require().Len(payloads, 1)
		s.Equal(models.PayloadSubtypeEstablished, payloads[0].Subtype)
		s.Equal(s.testDuelID, payloads[0].SessionID)
	}
}

func (s *DuelServiceTestSuite) TestAcceptAfterEstablishedIsNoop() {
	s.expectGet(s.inProgress(3))

	out, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.False(out.Established)
	s.True(out.AlreadyAccepted)
	s.Empty(s.sent)
}

func (s *DuelServiceTestSuite) TestAcceptAbortedDuelIsIgnored() {
	stored := s.duel(models.DuelStateAborted, 2)
	stored.Aborted = true
	stored.AbortedBy = "y"
	s.expectGet(stored)

	out, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.True(out.Ignored)
	s.Equal(models.DuelStateAborted, out.Duel.State)
}

func (s *DuelServiceTestSuite) TestAcceptByStranger() {
	s.expectGet(s.duel(models.DuelStateInitializing, 1))

	_, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "z"})
	s.Equal(ErrParticipantNotInDuel, err)
}

func (s *DuelServiceTestSuite) TestAcceptUnknownDuel() {
	s.mockDuelRepo.EXPECT().
		GetDuel(gomock.Any(), gomock.Any()).
		Return(nil, duelRepo.ErrDuelNotFound)

	_, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: "missing", ParticipantID: "x"})
	s.Equal(ErrDuelNotFound, err)
}

func (s *DuelServiceTestSuite) TestAcceptRetriesAfterConflict() {
	// Xena reads version 1, Yuri's accept lands first
	first := s.duel(models.DuelStateInitializing, 1)
	second := s.duel(models.DuelStateInitializing, 2)
	second.ParticipantB.Accepted = true

	gomock.InOrder(
		s.mockDuelRepo.EXPECT().GetDuel(gomock.Any(), gomock.Any()).Return(first, nil),
		s.mockDuelRepo.EXPECT().UpdateDuel(gomock.Any(), gomock.Any()).Return(nil, duelRepo.ErrVersionConflict),
		s.mockDuelRepo.EXPECT().GetDuel(gomock.Any(), gomock.Any()).Return(second, nil),
		s.mockDuelRepo.EXPECT().
			UpdateDuel(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input *duelRepo.UpdateDuelInput) (*models.Duel, error) {
				s.Equal(int64(2), input.ExpectedVersion)
				s.Equal(models.DuelStateInProgress, input.Duel.State)
				written := input.Duel.Copy()
				written.Version = 3
				return written, nil
			}),
	)
	s.expectSends(2)

	retries := testutil.ToFloat64(metrics.DuelConflictRetriesTotal.WithLabelValues("accept"))

	out, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.True(out.Established)
	s.Equal(retries+1, testutil.ToFloat64(metrics.DuelConflictRetriesTotal.WithLabelValues("accept")))
}

func (s *DuelServiceTestSuite) TestGivesUpAfterMaxRetries() {
	s.mockDuelRepo.EXPECT().
		GetDuel(gomock.Any(), gomock.Any()).
		Return(s.duel(models.DuelStateInitializing, 1), nil).
		Times(DefaultMaxRetries)
	s.mockDuelRepo.EXPECT().
		UpdateDuel(gomock.Any(), gomock.Any()).
		Return(nil, duelRepo.ErrVersionConflict).
		Times(DefaultMaxRetries)

	_, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Equal(ErrTooManyConflicts, err)
}

func (s *DuelServiceTestSuite) TestAbortPenalizesAndNotifies() {
	s.expectGet(s.inProgress(3))
	s.expectCommit(func(written *models.Duel, _ int64) {
		s.Equal(models.DuelStateAborted, written.State)
		s.True(written.Aborted)
		s.Equal("y", written.AbortedBy)
	})
	s.mockDirectory.EXPECT().
		ApplyScoreDelta(gomock.Any(), &participantRepo.ApplyScoreDeltaInput{ParticipantID: "y", Delta: -1}).
		Return(&participantRepo.ApplyScoreDeltaOutput{Score: -1}, nil)
	s.expectSends(2)

	out, err := s.duelService.AbortDuel(s.ctx, &AbortDuelInput{DuelID: s.testDuelID, ParticipantID: "y"})
	s.Require().NoError(err)
	s.True(out.Aborted)

	for _, id := range []string{"x", "y"} {
		payloads := s.sentTo(id)
		s.Require().Len(payloads, 1)
		s.Equal(models.PayloadSubtypeAborted, payloads[0].Subtype)
		s.Equal("y", payloads[0].AborterID)
		s.Equal("Yuri", payloads[0].AborterName)
	}
}

func (s *DuelServiceTestSuite) TestSecondAbortDoesNotPenalizeAgain() {
	stored := s.duel(models.DuelStateAborted, 2)
	stored.Aborted = true
	stored.AbortedBy = "y"
	s.expectGet(stored)

	out, err := s.duelService.AbortDuel(s.ctx, &AbortDuelInput{DuelID: s.testDuelID, ParticipantID: "y"})
	s.Require().NoError(err)
	s.False(out.Aborted)
}

func (s *DuelServiceTestSuite) TestAbortFinishedDuelIsNoop() {
	stored := s.inProgress(4)
	stored.State = models.DuelStateFinished
	stored.WinnerName = models.DrawMarker
	s.expectGet(stored)

	out, err := s.duelService.AbortDuel(s.ctx, &AbortDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.False(out.Aborted)
	s.Equal(models.DuelStateFinished, out.Duel.State)
}

func (s *DuelServiceTestSuite) TestFirstInteractionIsRecorded() {
	s.expectGet(s.inProgress(3))
	s.expectCommit(func(written *models.Duel, _ int64) {
		s.Equal(s.testTime.UnixMilli(), written.ParticipantA.InteractedAt)
		s.Equal(models.NoInteraction, written.ParticipantB.InteractedAt)
		s.Equal(models.DuelStateInProgress, written.State)
	})

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.True(out.Recorded)
	s.False(out.Resolved)
}

func (s *DuelServiceTestSuite) TestRepeatedInteractionKeepsFirstTimestamp() {
	stored := s.inProgress(4)
	stored.ParticipantA.InteractedAt = s.testTime.Add(-5 * time.Second).UnixMilli()
	s.expectGet(stored)

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.False(out.Recorded)
	s.Equal(stored.ParticipantA.InteractedAt, out.Duel.ParticipantA.InteractedAt)
}

func (s *DuelServiceTestSuite) TestInteractionBeforeEstablishedIsIgnored() {
	s.expectGet(s.duel(models.DuelStateInitializing, 1))

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.True(out.Ignored)
	s.False(out.Recorded)
}

func (s *DuelServiceTestSuite) TestCloseInteractionsWithOneFlipUpWin() {
	stored := s.inProgress(4)
	// Yuri interacted 30 seconds before now
	stored.ParticipantB.InteractedAt = s.testTime.Add(-30 * time.Second).UnixMilli()
	s.expectGet(stored)

	gomock.InOrder(
		s.mockRandom.EXPECT().Flip(0.5).Return(true),
		s.mockRandom.EXPECT().Flip(0.5).Return(false),
	)
	s.expectCommit(func(written *models.Duel, _ int64) {
		s.Equal(models.DuelStateFinished, written.State)
		s.Equal("x", written.WinnerID)
		s.Equal("Xena", written.WinnerName)
	})
	s.mockDirectory.EXPECT().
		ApplyScoreDelta(gomock.Any(), &participantRepo.ApplyScoreDeltaInput{ParticipantID: "x", Delta: 5}).
		Return(&participantRepo.ApplyScoreDeltaOutput{Score: 5}, nil)
	s.expectSends(2)

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.True(out.Resolved)
	s.Equal(OutcomeWin, out.Outcome)

	won := s.sentTo("x")
	s.Require().Len(won, 1)
	s.Equal(models.PayloadSubtypeWon, won[0].Subtype)
	s.Require().NotNil(won[0].NewScore)
	s.Equal(int64(5), *won[0].NewScore)
	s.Equal("Yuri", won[0].OpponentName)

	lost := s.sentTo("y")
	s.Require().Len(lost, 1)
	s.Equal(models.PayloadSubtypeLost, lost[0].Subtype)
	s.Require().NotNil(lost[0].NewScore)
	s.Equal(int64(0), *lost[0].NewScore)
	s.Equal("Xena", lost[0].OpponentName)
}

func (s *DuelServiceTestSuite) TestCloseInteractionsWithMatchingFlipsDraw() {
	stored := s.inProgress(4)
	stored.ParticipantB.InteractedAt = s.testTime.Add(-30 * time.Second).UnixMilli()
	s.expectGet(stored)

	s.mockRandom.EXPECT().Flip(0.5).Return(true).Times(2)
	s.expectCommit(func(written *models.Duel, _ int64) {
		s.Equal(models.DuelStateFinished, written.State)
		s.Empty(written.WinnerID)
		s.Equal(models.DrawMarker, written.WinnerName)
	})
	s.expectSends(2)

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.Equal(OutcomeDrawFlip, out.Outcome)

	s.Equal("Yuri", s.sentTo("x")[0].OpponentName)
	s.Equal("Xena", s.sentTo("y")[0].OpponentName)
	for _, in := range s.sent {
		s.Equal(models.PayloadSubtypeDraw, in.Payload.Subtype)
	}
}

func (s *DuelServiceTestSuite) TestDistantInteractionsDrawWithoutFlipping() {
	stored := s.inProgress(4)
	stored.ParticipantB.InteractedAt = s.testTime.Add(-90 * time.Second).UnixMilli()
	s.expectGet(stored)

	// No Flip expectations: the random source must stay untouched
	s.expectCommit(func(written *models.Duel, _ int64) {
		s.Equal(models.DrawMarker, written.WinnerName)
	})
	s.expectSends(2)

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.Equal(OutcomeDrawTimeout, out.Outcome)
	s.True(out.Duel.IsDraw())
}

func (s *DuelServiceTestSuite) TestWindowBoundaryIsADraw() {
	stored := s.inProgress(4)
	stored.ParticipantB.InteractedAt = s.testTime.Add(-DefaultResolutionWindow).UnixMilli()
	s.expectGet(stored)
	s.expectCommit(nil)
	s.expectSends(2)

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.Equal(OutcomeDrawTimeout, out.Outcome)
}

func (s *DuelServiceTestSuite) TestDeliveryFailureDoesNotFailTransition() {
	stored := s.duel(models.DuelStateInitializing, 2)
	stored.ParticipantB.Accepted = true
	s.expectGet(stored)
	s.expectCommit(nil)
	s.mockDispatcher.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(errors.New("push gateway down")).
		Times(2)

	out, err := s.duelService.AcceptDuel(s.ctx, &AcceptDuelInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.True(out.Established)
}

func (s *DuelServiceTestSuite) TestScoreFailureStillNotifiesWinner() {
	stored := s.inProgress(4)
	stored.ParticipantB.InteractedAt = s.testTime.Add(-time.Second).UnixMilli()
	s.expectGet(stored)

	gomock.InOrder(
		s.mockRandom.EXPECT().Flip(0.5).Return(false),
		s.mockRandom.EXPECT().Flip(0.5).Return(true),
	)
	s.expectCommit(nil)
	s.mockDirectory.EXPECT().
		ApplyScoreDelta(gomock.Any(), &participantRepo.ApplyScoreDeltaInput{ParticipantID: "y", Delta: 5}).
		Return(nil, errors.New("redis unavailable"))
	s.expectSends(2)

	out, err := s.duelService.RecordInteraction(s.ctx, &RecordInteractionInput{DuelID: s.testDuelID, ParticipantID: "x"})
	s.Require().NoError(err)
	s.Equal("y", out.Duel.WinnerID)

	won := s.sentTo("y")
	s.Require().Len(won, 1)
	s.Equal(models.PayloadSubtypeWon, won[0].Subtype)
	s.Nil(won[0].NewScore)
}

func (s *DuelServiceTestSuite) TestGetAndListDuels() {
	stored := s.duel(models.DuelStateInitializing, 1)
	s.expectGet(stored)

	got, err := s.duelService.GetDuel(s.ctx, &GetDuelInput{DuelID: s.testDuelID})
	s.Require().NoError(err)
	s.Equal(stored, got.Duel)

	s.mockDuelRepo.EXPECT().
		ListDuelsByParticipant(gomock.Any(), &duelRepo.ListDuelsByParticipantInput{ParticipantID: "x", Limit: 10}).
		Return(&duelRepo.ListDuelsByParticipantOutput{Duels: []*models.Duel{stored}}, nil)

	list, err := s.duelService.ListDuels(s.ctx, &ListDuelsInput{ParticipantID: "x", Limit: 10})
	s.Require().NoError(err)
	s.Len(list.Duels, 1)
}

func (s *DuelServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Equal(ErrNilConfig, err)

	cfg := &Config{
		DuelRepo:   s.mockDuelRepo,
		Directory:  s.mockDirectory,
		Matchmaker: s.mockMatchmaker,
		Dispatcher: s.mockDispatcher,
		Random:     s.mockRandom,
	}
	_, err = New(cfg)
	s.Equal(ErrNilClock, err)

	cfg.Clock = s.mockClock
	cfg.Dispatcher = nil
	_, err = New(cfg)
	s.Equal(ErrNilDispatcher, err)
}
