package participant

import (
	"context"
	"sync"
	"testing"

	"github.com/KirkDiggler/faceoff/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context

	garching models.Coordinates
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.garching = models.Coordinates{Longitude: 11.5833, Latitude: 48.15}
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) save(p *models.Participant) {
	s.Require().NoError(s.repo.SaveParticipant(s.ctx, &SaveParticipantInput{
		Participant:    p,
		ReplaceFriends: true,
	}))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetParticipant() {
	s.save(&models.Participant{
		ID:            "alice",
		Name:          "Alice",
		DeviceToken:   "device-a",
		Location:      s.garching,
		LastSeen:      1700000000,
		Participating: true,
		FriendIDs:     []string{"carol", "bob"},
	})

	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)

	s.Equal("alice", p.ID)
	s.Equal("Alice", p.Name)
	s.Equal("device-a", p.DeviceToken)
	s.Equal(s.garching, p.Location)
	s.Equal(int64(1700000000), p.LastSeen)
	s.True(p.Participating)
	s.Equal(int64(0), p.Score)
	s.Equal([]string{"bob", "carol"}, p.FriendIDs)
}

func (s *RedisRepositoryTestSuite) TestGetNonExistentParticipant() {
	_, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "ghost"})
	s.Require().Error(err)
	s.Equal(ErrParticipantNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestSaveNeverOverwritesScore() {
	s.save(&models.Participant{ID: "alice", Name: "Alice"})

	_, err := s.repo.ApplyScoreDelta(s.ctx, &ApplyScoreDeltaInput{ParticipantID: "alice", Delta: 5})
	s.Require().NoError(err)

	// A profile refresh carrying a stale score must not clobber the delta
	s.save(&models.Participant{ID: "alice", Name: "Alice Renamed", Score: 0})

	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)
	s.Equal("Alice Renamed", p.Name)
	s.Equal(int64(5), p.Score)
}

func (s *RedisRepositoryTestSuite) TestSaveWithoutReplaceKeepsFriends() {
	s.save(&models.Participant{ID: "alice", FriendIDs: []string{"bob"}})

	err := s.repo.SaveParticipant(s.ctx, &SaveParticipantInput{
		Participant: &models.Participant{ID: "alice", Name: "Alice"},
	})
	s.Require().NoError(err)

	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)
	s.Equal([]string{"bob"}, p.FriendIDs)
}

func (s *RedisRepositoryTestSuite) TestApplyScoreDelta() {
	s.save(&models.Participant{ID: "alice"})

	out, err := s.repo.ApplyScoreDelta(s.ctx, &ApplyScoreDeltaInput{ParticipantID: "alice", Delta: 5})
	s.Require().NoError(err)
	s.Equal(int64(5), out.Score)

	out, err = s.repo.ApplyScoreDelta(s.ctx, &ApplyScoreDeltaInput{ParticipantID: "alice", Delta: -1})
	s.Require().NoError(err)
	s.Equal(int64(4), out.Score)
}

func (s *RedisRepositoryTestSuite) TestApplyScoreDeltaUnknownParticipant() {
	_, err := s.repo.ApplyScoreDelta(s.ctx, &ApplyScoreDeltaInput{ParticipantID: "ghost", Delta: 5})
	s.Require().Error(err)
	s.Equal(ErrParticipantNotFound, err)

	// The delta must not have created a profile
	_, err = s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "ghost"})
	s.Equal(ErrParticipantNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestConcurrentScoreDeltasAreNotLost() {
	s.save(&models.Participant{ID: "alice"})

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			delta := int64(5)
			if i%2 == 0 {
				delta = -1
			}
			_, err := s.repo.ApplyScoreDelta(s.ctx, &ApplyScoreDeltaInput{ParticipantID: "alice", Delta: delta})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)
	s.Equal(int64(10*5-10*1), p.Score)
}

func (s *RedisRepositoryTestSuite) TestUpdateLocation() {
	s.save(&models.Participant{ID: "alice", Participating: true, Location: models.Coordinates{Longitude: 0, Latitude: 0}})

	err := s.repo.UpdateLocation(s.ctx, &UpdateLocationInput{ParticipantID: "alice", Location: s.garching})
	s.Require().NoError(err)

	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)
	s.Equal(s.garching, p.Location)

	// The geo index follows the move
	out, err := s.repo.FindNearby(s.ctx, &FindNearbyInput{Center: s.garching, MaxDistance: 100, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(out.Participants, 1)
	s.Equal("alice", out.Participants[0].ID)
}

func (s *RedisRepositoryTestSuite) TestUpdateLocationUnknownParticipant() {
	err := s.repo.UpdateLocation(s.ctx, &UpdateLocationInput{ParticipantID: "ghost", Location: s.garching})
	s.Equal(ErrParticipantNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestSaveRejectsUnindexableLatitude() {
	err := s.repo.SaveParticipant(s.ctx, &SaveParticipantInput{
		Participant:    &models.Participant{ID: "polar", Location: models.Coordinates{Longitude: 0, Latitude: 88}},
		ReplaceFriends: true,
	})
	s.Equal(ErrInvalidLocation, err)

	// Nothing was half written
	_, err = s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "polar"})
	s.Equal(ErrParticipantNotFound, err)
	s.False(s.mr.Exists(participantKey("polar")))
}

func (s *RedisRepositoryTestSuite) TestUpdateLocationRejectsUnindexableLatitude() {
	s.save(&models.Participant{ID: "alice", Participating: true, Location: s.garching})

	err := s.repo.UpdateLocation(s.ctx, &UpdateLocationInput{
		ParticipantID: "alice",
		Location:      models.Coordinates{Longitude: 11.58, Latitude: -89.9},
	})
	s.Equal(ErrInvalidLocation, err)

	// Hash and geo index still agree on the old position
	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)
	s.Equal(s.garching, p.Location)

	out, err := s.repo.FindNearby(s.ctx, &FindNearbyInput{Center: s.garching, MaxDistance: 100, Limit: 10})
	s.Require().NoError(err)
	s.Len(out.Participants, 1)
}

func (s *RedisRepositoryTestSuite) TestUpdatePresence() {
	s.save(&models.Participant{ID: "alice", LastSeen: 1, Participating: false})

	err := s.repo.UpdatePresence(s.ctx, &UpdatePresenceInput{ParticipantID: "alice", LastSeen: 1700000000, Participating: true})
	s.Require().NoError(err)

	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)
	s.Equal(int64(1700000000), p.LastSeen)
	s.True(p.Participating)
}

func (s *RedisRepositoryTestSuite) TestAddFriend() {
	s.save(&models.Participant{ID: "alice"})

	s.Require().NoError(s.repo.AddFriend(s.ctx, &AddFriendInput{ParticipantID: "alice", FriendID: "bob"}))
	// Adding twice is harmless
	s.Require().NoError(s.repo.AddFriend(s.ctx, &AddFriendInput{ParticipantID: "alice", FriendID: "bob"}))

	p, err := s.repo.GetParticipant(s.ctx, &GetParticipantInput{ParticipantID: "alice"})
	s.Require().NoError(err)
	s.Equal([]string{"bob"}, p.FriendIDs)

	err = s.repo.AddFriend(s.ctx, &AddFriendInput{ParticipantID: "ghost", FriendID: "bob"})
	s.Equal(ErrParticipantNotFound, err)
}

func (s *RedisRepositoryTestSuite) TestFindNearby() {
	// roughly 55 m north
	near := models.Coordinates{Longitude: s.garching.Longitude, Latitude: s.garching.Latitude + 0.0005}
	// roughly 1.1 km north
	far := models.Coordinates{Longitude: s.garching.Longitude, Latitude: s.garching.Latitude + 0.01}

	s.save(&models.Participant{ID: "here", Location: s.garching, Participating: true})
	s.save(&models.Participant{ID: "near", Location: near, Participating: true})
	s.save(&models.Participant{ID: "near-but-out", Location: near, Participating: false})
	s.save(&models.Participant{ID: "far", Location: far, Participating: true})

	out, err := s.repo.FindNearby(s.ctx, &FindNearbyInput{Center: s.garching, MaxDistance: 100, Limit: 20})
	s.Require().NoError(err)

	ids := make([]string, 0, len(out.Participants))
	for _, p := range out.Participants {
		ids = append(ids, p.ID)
	}
	s.Equal([]string{"here", "near"}, ids)
}

func (s *RedisRepositoryTestSuite) TestFindNearbyRespectsLimit() {
	for _, id := range []string{"a", "b", "c"} {
		s.save(&models.Participant{ID: id, Location: s.garching, Participating: true})
	}

	out, err := s.repo.FindNearby(s.ctx, &FindNearbyInput{Center: s.garching, MaxDistance: 100, Limit: 2})
	s.Require().NoError(err)
	s.Len(out.Participants, 2)
}
