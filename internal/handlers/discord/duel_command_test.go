package discord

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/KirkDiggler/faceoff/internal/notify"
	notifyMocks "github.com/KirkDiggler/faceoff/internal/notify/mocks"
	"github.com/KirkDiggler/faceoff/internal/services/duel"
	duelMocks "github.com/KirkDiggler/faceoff/internal/services/duel/mocks"
	"github.com/KirkDiggler/faceoff/internal/services/matchmaker"
	"github.com/KirkDiggler/faceoff/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/faceoff/internal/services/messaging/mocks"
	"github.com/KirkDiggler/faceoff/internal/services/participant"
	participantMocks "github.com/KirkDiggler/faceoff/internal/services/participant/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DuelCommandTestSuite struct {
	suite.Suite
	mockCtrl               *gomock.Controller
	mockDuelService        *duelMocks.MockService
	mockParticipantService *participantMocks.MockService
	mockMessagingService   *messagingMocks.MockService
	command                *DuelCommand
	ctx                    context.Context

	testDuel *models.Duel
	xena     *models.Participant
}

func (s *DuelCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDuelService = duelMocks.NewMockService(s.mockCtrl)
	s.mockParticipantService = participantMocks.NewMockService(s.mockCtrl)
	s.mockMessagingService = messagingMocks.NewMockService(s.mockCtrl)
	s.ctx = context.Background()

	cmd, err := NewDuelCommand(&DuelCommandConfig{
		DuelService:        s.mockDuelService,
		ParticipantService: s.mockParticipantService,
		MessagingService:   s.mockMessagingService,
	})
	s.Require().NoError(err)
	s.command = cmd

	s.xena = &models.Participant{ID: "x", Name: "Xena", Score: 7, Location: models.Coordinates{Longitude: 11.5833, Latitude: 48.15}}
	s.testDuel = &models.Duel{
		ID:           "d1",
		Version:      1,
		ParticipantA: models.Contender{ID: "x", Name: "Xena", InteractedAt: models.NoInteraction},
		ParticipantB: models.Contender{ID: "y", Name: "Yuri", InteractedAt: models.NoInteraction},
		State:        models.DuelStateInitializing,
		CreatedAt:    time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC),
	}
}

func (s *DuelCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDuelCommandSuite(t *testing.T) {
	suite.Run(t, new(DuelCommandTestSuite))
}

func (s *DuelCommandTestSuite) invoke(subcommand string, options ...*discordgo.ApplicationCommandInteractionDataOption) *reply {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, o := range options {
		opts[o.Name] = o
	}
	return s.command.execute(s.ctx, &invocation{
		CallerID:   "x",
		CallerName: "Xena",
		Subcommand: subcommand,
		Options:    opts,
	})
}

func numberOpt(name string, v float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionNumber, Value: v}
}

func stringOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: v}
}

func (s *DuelCommandTestSuite) expectErrorMessage(errorType messaging.ErrorType) {
	s.mockMessagingService.EXPECT().
		GetErrorMessage(gomock.Any(), &messaging.GetErrorMessageInput{ErrorType: errorType}).
		Return(&messaging.GetErrorMessageOutput{Title: string(errorType), Message: "explained"}, nil)
}

func (s *DuelCommandTestSuite) TestLoginUsesCallerAsDevice() {
	s.mockParticipantService.EXPECT().
		Login(gomock.Any(), &participant.LoginInput{
			ParticipantID: "x",
			Name:          "Xena",
			DeviceToken:   "x",
			Location:      models.Coordinates{Longitude: 11.5, Latitude: 48.1},
		}).
		Return(&participant.LoginOutput{Participant: s.xena}, nil)

	r := s.invoke(subcommandLogin, numberOpt(optionLongitude, 11.5), numberOpt(optionLatitude, 48.1))
	s.Equal("Logged in", r.Title)
	s.True(r.Ephemeral)
	s.Equal("7", r.Fields[0].Value)
}

func (s *DuelCommandTestSuite) TestLoginRejectsBadCoordinates() {
	r := s.invoke(subcommandLogin, numberOpt(optionLongitude, 200), numberOpt(optionLatitude, 48.1))
	s.Equal("Invalid input", r.Title)
	s.Equal(colorError, r.Color)

	r = s.invoke(subcommandLogin)
	s.Equal("Invalid input", r.Title)

	// Valid on a map but outside what the location index can hold
	r = s.invoke(subcommandLogin, numberOpt(optionLongitude, 0), numberOpt(optionLatitude, 88))
	s.Equal("Invalid input", r.Title)
	s.Contains(r.Description, "latitude")
}

func (s *DuelCommandTestSuite) TestRequestOffersButtons() {
	s.mockDuelService.EXPECT().
		RequestDuel(gomock.Any(), &duel.RequestDuelInput{ParticipantID: "x"}).
		Return(&duel.RequestDuelOutput{Duel: s.testDuel, Opponent: &models.Participant{ID: "y", Name: "Yuri"}}, nil)

	r := s.invoke(subcommandRequest)
	s.Equal("Duel proposed", r.Title)
	s.Contains(r.Description, "Yuri")
	s.Require().Len(r.Buttons, 2)
	s.Equal(ButtonAcceptPrefix+"d1", r.Buttons[0].(discordgo.Button).CustomID)
	s.Equal(ButtonAbortPrefix+"d1", r.Buttons[1].(discordgo.Button).CustomID)
}

func (s *DuelCommandTestSuite) TestRequestWithoutOpponent() {
	s.mockDuelService.EXPECT().
		RequestDuel(gomock.Any(), gomock.Any()).
		Return(nil, matchmaker.ErrNoOpponent)
	s.expectErrorMessage(messaging.ErrorTypeNoOpponent)

	r := s.invoke(subcommandRequest)
	s.Equal(string(messaging.ErrorTypeNoOpponent), r.Title)
	s.Equal("explained", r.Description)
	s.True(r.Ephemeral)
}

func (s *DuelCommandTestSuite) TestAcceptOutcomes() {
	cases := []struct {
		name        string
		out         *duel.AcceptDuelOutput
		description string
		buttons     int
	}{
		{"waiting", &duel.AcceptDuelOutput{}, "Accepted. Waiting for your opponent.", 0},
		{"established", &duel.AcceptDuelOutput{Established: true}, "Both sides accepted. Find your opponent and interact!", 2},
		{"repeat", &duel.AcceptDuelOutput{AlreadyAccepted: true}, "You already accepted this duel.", 0},
		{"aborted", &duel.AcceptDuelOutput{Ignored: true}, "That duel was aborted.", 0},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			tc.out.Duel = s.testDuel
			s.mockDuelService.EXPECT().
				AcceptDuel(gomock.Any(), &duel.AcceptDuelInput{DuelID: "d1", ParticipantID: "x"}).
				Return(tc.out, nil)

			r := s.invoke(subcommandAccept, stringOpt(optionID, "d1"))
			s.Equal(tc.description, r.Description)
			s.Len(r.Buttons, tc.buttons)
		})
	}
}

func (s *DuelCommandTestSuite) TestAcceptRequiresID() {
	r := s.invoke(subcommandAccept, stringOpt(optionID, "  "))
	s.Equal("Invalid input", r.Title)
}

func (s *DuelCommandTestSuite) TestAcceptStrangerDuel() {
	s.mockDuelService.EXPECT().
		AcceptDuel(gomock.Any(), gomock.Any()).
		Return(nil, duel.ErrParticipantNotInDuel)
	s.expectErrorMessage(messaging.ErrorTypeNotInDuel)

	r := s.invoke(subcommandAccept, stringOpt(optionID, "d1"))
	s.Equal(string(messaging.ErrorTypeNotInDuel), r.Title)
}

func (s *DuelCommandTestSuite) TestAbort() {
	aborted := s.testDuel.Copy()
	aborted.State = models.DuelStateAborted
	s.mockDuelService.EXPECT().
		AbortDuel(gomock.Any(), &duel.AbortDuelInput{DuelID: "d1", ParticipantID: "x"}).
		Return(&duel.AbortDuelOutput{Duel: aborted, Aborted: true}, nil)

	r := s.invoke(subcommandAbort, stringOpt(optionID, "d1"))
	s.Equal("Duel aborted", r.Title)
	s.Contains(r.Description, "-1 point")

	s.mockDuelService.EXPECT().
		AbortDuel(gomock.Any(), gomock.Any()).
		Return(&duel.AbortDuelOutput{Duel: aborted}, nil)

	r = s.invoke(subcommandAbort, stringOpt(optionID, "d1"))
	s.Equal("Nothing to abort, the duel is aborted.", r.Description)
}

func (s *DuelCommandTestSuite) TestInteractResolvesWin() {
	finished := s.testDuel.Copy()
	finished.State = models.DuelStateFinished
	finished.WinnerID = "x"
	finished.WinnerName = "Xena"
	s.mockDuelService.EXPECT().
		RecordInteraction(gomock.Any(), &duel.RecordInteractionInput{DuelID: "d1", ParticipantID: "x"}).
		Return(&duel.RecordInteractionOutput{Duel: finished, Recorded: true, Resolved: true, Outcome: duel.OutcomeWin}, nil)

	r := s.invoke(subcommandInteract, stringOpt(optionID, "d1"))
	s.Equal("You beat Yuri! +5 points.", r.Description)
}

func (s *DuelCommandTestSuite) TestInteractOutcomes() {
	inProgress := s.testDuel.Copy()
	inProgress.State = models.DuelStateInProgress

	cases := []struct {
		name        string
		out         *duel.RecordInteractionOutput
		description string
	}{
		{"recorded", &duel.RecordInteractionOutput{Recorded: true}, "Interaction recorded. Waiting for your opponent."},
		{"repeat", &duel.RecordInteractionOutput{}, "You already interacted in this duel."},
		{"ignored", &duel.RecordInteractionOutput{Ignored: true}, "The duel is in_progress, nothing to record."},
		{"timeout", &duel.RecordInteractionOutput{Resolved: true, Outcome: duel.OutcomeDrawTimeout}, "You and Yuri met too far apart in time. It's a draw."},
		{"flip draw", &duel.RecordInteractionOutput{Resolved: true, Outcome: duel.OutcomeDrawFlip}, "The coins agreed. You and Yuri drew."},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			tc.out.Duel = inProgress
			s.mockDuelService.EXPECT().
				RecordInteraction(gomock.Any(), gomock.Any()).
				Return(tc.out, nil)

			r := s.invoke(subcommandInteract, stringOpt(optionID, "d1"))
			s.Equal(tc.description, r.Description)
		})
	}
}

func (s *DuelCommandTestSuite) TestBusyDuel() {
	s.mockDuelService.EXPECT().
		RecordInteraction(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("interact: %w", duel.ErrTooManyConflicts))
	s.expectErrorMessage(messaging.ErrorTypeBusy)

	r := s.invoke(subcommandInteract, stringOpt(optionID, "d1"))
	s.Equal(string(messaging.ErrorTypeBusy), r.Title)
}

func (s *DuelCommandTestSuite) TestBefriend() {
	s.mockParticipantService.EXPECT().
		AddFriend(gomock.Any(), &participant.AddFriendInput{ParticipantID: "x", FriendID: "y"}).
		Return(&participant.AddFriendOutput{Friend: &models.Participant{ID: "y", Name: "Yuri"}}, nil)

	r := s.invoke(subcommandBefriend, stringOpt(optionUser, "y"))
	s.Equal("You and Yuri can now duel each other.", r.Description)
}

func (s *DuelCommandTestSuite) TestBefriendSelfReadsServiceError() {
	s.mockParticipantService.EXPECT().
		AddFriend(gomock.Any(), gomock.Any()).
		Return(nil, participant.ErrSelfFriendship)

	r := s.invoke(subcommandBefriend, stringOpt(optionUser, "x"))
	s.Equal("Can't do that", r.Title)
	s.Equal("A participant cannot befriend themselves.", r.Description)
}

func (s *DuelCommandTestSuite) TestNearbyListsDistances() {
	s.mockParticipantService.EXPECT().
		GetProfile(gomock.Any(), &participant.GetProfileInput{ParticipantID: "x"}).
		Return(&participant.GetProfileOutput{Participant: s.xena}, nil)
	s.mockParticipantService.EXPECT().
		ListNearby(gomock.Any(), &participant.ListNearbyInput{ParticipantID: "x"}).
		Return(&participant.ListNearbyOutput{Participants: []*models.Participant{
			{ID: "y", Name: "Yuri", Score: 3, Location: s.xena.Location},
		}}, nil)

	r := s.invoke(subcommandNearby)
	s.Require().Len(r.Fields, 1)
	s.Equal("Yuri", r.Fields[0].Name)
	s.Equal("0 m, score 3", r.Fields[0].Value)
}

func (s *DuelCommandTestSuite) TestNearbyEmpty() {
	s.mockParticipantService.EXPECT().
		GetProfile(gomock.Any(), gomock.Any()).
		Return(&participant.GetProfileOutput{Participant: s.xena}, nil)
	s.mockParticipantService.EXPECT().
		ListNearby(gomock.Any(), gomock.Any()).
		Return(&participant.ListNearbyOutput{}, nil)

	r := s.invoke(subcommandNearby)
	s.Equal("Nobody is around right now.", r.Description)
}

func (s *DuelCommandTestSuite) TestNearbyNotLoggedIn() {
	s.mockParticipantService.EXPECT().
		GetProfile(gomock.Any(), gomock.Any()).
		Return(nil, participant.ErrParticipantNotFound)
	s.expectErrorMessage(messaging.ErrorTypeNotRegistered)

	r := s.invoke(subcommandNearby)
	s.Equal(string(messaging.ErrorTypeNotRegistered), r.Title)
}

func (s *DuelCommandTestSuite) TestPoke() {
	s.mockParticipantService.EXPECT().
		Poke(gomock.Any(), &participant.PokeInput{SenderID: "x", RecipientID: "y"}).
		Return(&participant.PokeOutput{Recipient: &models.Participant{ID: "y", Name: "Yuri"}}, nil)

	r := s.invoke(subcommandPoke, stringOpt(optionUser, "y"))
	s.Equal("You poked Yuri.", r.Description)
}

func (s *DuelCommandTestSuite) TestHistory() {
	s.mockParticipantService.EXPECT().
		GetProfile(gomock.Any(), gomock.Any()).
		Return(&participant.GetProfileOutput{Participant: s.xena}, nil)
	s.mockDuelService.EXPECT().
		ListDuels(gomock.Any(), &duel.ListDuelsInput{ParticipantID: "x", Limit: historyLimit}).
		Return(&duel.ListDuelsOutput{Duels: []*models.Duel{s.testDuel, s.testDuel}}, nil)
	s.mockMessagingService.EXPECT().
		GetDuelSummaryMessage(gomock.Any(), &messaging.GetDuelSummaryMessageInput{Duel: s.testDuel, ViewerID: "x"}).
		Return(&messaging.GetDuelSummaryMessageOutput{Message: "line"}, nil).
		Times(2)

	r := s.invoke(subcommandHistory)
	s.Equal("Xena: 7 points", r.Title)
	s.Equal("line\nline", r.Description)
}

func (s *DuelCommandTestSuite) TestUnknownFailureIsGeneric() {
	s.mockDuelService.EXPECT().
		RequestDuel(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis down"))
	s.expectErrorMessage(messaging.ErrorTypeUnknown)

	r := s.invoke(subcommandRequest)
	s.Equal(colorError, r.Color)
	s.NotContains(r.Description, "redis")
}

func (s *DuelCommandTestSuite) TestUnknownCaller() {
	r := s.command.execute(s.ctx, &invocation{Subcommand: subcommandRequest})
	s.Equal("Could not identify you.", r.Description)
}

func (s *DuelCommandTestSuite) TestInboxWithoutTransportIsUnknown() {
	s.expectErrorMessage(messaging.ErrorTypeUnknown)

	r := s.invoke(subcommandInbox)
	s.Equal(colorError, r.Color)
	for _, opt := range s.command.Options {
		s.NotEqual(subcommandInbox, opt.Name)
	}
}

func (s *DuelCommandTestSuite) TestInboxDrainsAndRenders() {
	mockInbox := notifyMocks.NewMockInbox(s.mockCtrl)
	cmd, err := NewDuelCommand(&DuelCommandConfig{
		DuelService:        s.mockDuelService,
		ParticipantService: s.mockParticipantService,
		MessagingService:   s.mockMessagingService,
		Inbox:              mockInbox,
	})
	s.Require().NoError(err)
	s.Equal(subcommandInbox, cmd.Options[len(cmd.Options)-1].Name)

	poke := &models.Payload{Type: models.PayloadTypeGame, Subtype: models.PayloadSubtypePoke, SenderName: "Yuri"}
	bogus := &models.Payload{Type: models.PayloadTypeGame, Subtype: "bogus"}
	mockInbox.EXPECT().
		Drain(gomock.Any(), &notify.DrainInput{DeviceToken: "x"}).
		Return(&notify.DrainOutput{Payloads: []*models.Payload{poke, bogus}}, nil)
	s.mockMessagingService.EXPECT().
		GetNotificationMessage(gomock.Any(), &messaging.GetNotificationMessageInput{Payload: poke}).
		Return(&messaging.GetNotificationMessageOutput{Title: "Poke", Message: "Yuri poked you."}, nil)
	s.mockMessagingService.EXPECT().
		GetNotificationMessage(gomock.Any(), &messaging.GetNotificationMessageInput{Payload: bogus}).
		Return(nil, errors.New("unknown payload subtype"))

	r := cmd.execute(s.ctx, &invocation{CallerID: "x", CallerName: "Xena", Subcommand: subcommandInbox})
	s.Equal("1 notification(s).", r.Description)
	s.Require().Len(r.Fields, 1)
	s.Equal("Yuri poked you.", r.Fields[0].Value)

	mockInbox.EXPECT().Drain(gomock.Any(), gomock.Any()).Return(&notify.DrainOutput{}, nil)
	r = cmd.execute(s.ctx, &invocation{CallerID: "x", CallerName: "Xena", Subcommand: subcommandInbox})
	s.Equal("Nothing new.", r.Description)
}

func TestParseButton(t *testing.T) {
	cases := map[string]struct {
		subcommand string
		duelID     string
		ok         bool
	}{
		ButtonAcceptPrefix + "d1":   {subcommandAccept, "d1", true},
		ButtonAbortPrefix + "d2":    {subcommandAbort, "d2", true},
		ButtonInteractPrefix + "d3": {subcommandInteract, "d3", true},
		ButtonAcceptPrefix:          {"", "", false},
		"roll_dice":                 {"", "", false},
	}

	for customID, want := range cases {
		subcommand, duelID, ok := parseButton(customID)
		if subcommand != want.subcommand || duelID != want.duelID || ok != want.ok {
			t.Errorf("parseButton(%q) = %q, %q, %v", customID, subcommand, duelID, ok)
		}
	}
}

func TestResponseData(t *testing.T) {
	data := responseData(&reply{
		Title:     "t",
		Buttons:   acceptButtons("d1"),
		Ephemeral: true,
	})

	if data.Embeds[0].Color != colorInfo {
		t.Errorf("expected default color, got %x", data.Embeds[0].Color)
	}
	if data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("expected ephemeral flag")
	}
	if len(data.Components) != 1 {
		t.Fatalf("expected one action row, got %d", len(data.Components))
	}
}

func TestCallerPrefersNickname(t *testing.T) {
	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "X", User: &discordgo.User{ID: "x", Username: "xena"}},
	}}
	id, name := caller(i)
	if id != "x" || name != "X" {
		t.Errorf("got %q %q", id, name)
	}

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "y", Username: "yuri"},
	}}
	id, name = caller(dm)
	if id != "y" || name != "yuri" {
		t.Errorf("got %q %q", id, name)
	}
}
