package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gspevents/event-admin/models"
	"github.com/gspevents/event-admin/repositories"
)

type fakeHostRepo struct {
	mu     sync.Mutex
	hosts  map[int]models.Host
	nextID int
}

func newFakeHostRepo(hosts ...models.Host) *fakeHostRepo {
	repo := &fakeHostRepo{hosts: map[int]models.Host{}, nextID: 1}
	for _, host := range hosts {
		repo.hosts[host.ID] = host
		if host.ID >= repo.nextID {
			repo.nextID = host.ID + 1
		}
	}
	return repo
}

func (r *fakeHostRepo) Create(_ context.Context, host *models.Host) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.hosts {
		if strings.EqualFold(existing.Name, host.Name) {
			return repositories.ErrHostNameConflict
		}
	}
	host.ID = r.nextID
	r.nextID++
	r.hosts[host.ID] = *host
	return nil
}

func (r *fakeHostRepo) GetByID(_ context.Context, id int) (*models.Host, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	host, ok := r.hosts[id]
	if !ok {
		return nil, repositories.ErrHostNotFound
	}
	return &host, nil
}

func (r *fakeHostRepo) GetByName(_ context.Context, name string) (*models.Host, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, host := range r.hosts {
		if strings.EqualFold(host.Name, name) {
			host := host
			return &host, nil
		}
	}
	return nil, repositories.ErrHostNotFound
}

func (r *fakeHostRepo) Update(_ context.Context, host *models.Host) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hosts[host.ID]; !ok {
		return repositories.ErrHostNotFound
	}
	r.hosts[host.ID] = *host
	return nil
}

func (r *fakeHostRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hosts[id]; !ok {
		return repositories.ErrHostNotFound
	}
	delete(r.hosts, id)
	return nil
}

func (r *fakeHostRepo) List(_ context.Context) ([]models.Host, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hosts := make([]models.Host, 0, len(r.hosts))
	for _, host := range r.hosts {
		hosts = append(hosts, host)
	}
	sort.Slice(hosts, func(i, j int) bool { return hosts[i].Name < hosts[j].Name })
	return hosts, nil
}

func (r *fakeHostRepo) Search(ctx context.Context, query string, limit int) ([]models.Host, error) {
	all, _ := r.List(ctx)
	matched := make([]models.Host, 0)
	for _, host := range all {
		if strings.Contains(strings.ToLower(host.Name), strings.ToLower(query)) {
			matched = append(matched, host)
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

type fakeVenueRepo struct {
	mu       sync.Mutex
	venues   map[int]models.Venue
	saveErrs map[int]error
	nextID   int
}

func newFakeVenueRepo(venues ...models.Venue) *fakeVenueRepo {
	repo := &fakeVenueRepo{venues: map[int]models.Venue{}, saveErrs: map[int]error{}, nextID: 1}
	for _, venue := range venues {
		repo.venues[venue.ID] = venue
		if venue.ID >= repo.nextID {
			repo.nextID = venue.ID + 1
		}
	}
	return repo
}

func (r *fakeVenueRepo) Create(_ context.Context, venue *models.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue.ID = r.nextID
	r.nextID++
	r.venues[venue.ID] = *venue
	return nil
}

func (r *fakeVenueRepo) GetByID(_ context.Context, id int) (*models.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok {
		return nil, repositories.ErrVenueNotFound
	}
	return &venue, nil
}

func (r *fakeVenueRepo) Update(_ context.Context, venue *models.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[venue.ID]; !ok {
		return repositories.ErrVenueNotFound
	}
	r.venues[venue.ID] = *venue
	return nil
}

func (r *fakeVenueRepo) UpdateScheduleFields(_ context.Context, id int, fields *models.Venue) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.saveErrs[id]; ok {
		return err
	}
	venue, ok := r.venues[id]
	if !ok {
		return repositories.ErrVenueNotFound
	}
	venue.DefaultDay = fields.DefaultDay
	venue.DefaultTime = fields.DefaultTime
	venue.DefaultHostID = fields.DefaultHostID
	venue.IsActive = fields.IsActive
	venue.Cancelled = fields.Cancelled
	venue.CancelReason = fields.CancelReason
	r.venues[id] = venue
	return nil
}

func (r *fakeVenueRepo) SetAccessKey(_ context.Context, id int, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok {
		return repositories.ErrVenueNotFound
	}
	venue.AccessKey = &key
	r.venues[id] = venue
	return nil
}

func (r *fakeVenueRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.venues[id]; !ok {
		return repositories.ErrVenueNotFound
	}
	delete(r.venues, id)
	return nil
}

func (r *fakeVenueRepo) List(_ context.Context) ([]models.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venues := make([]models.Venue, 0, len(r.venues))
	for _, venue := range r.venues {
		venues = append(venues, venue)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].Name < venues[j].Name })
	return venues, nil
}

func (r *fakeVenueRepo) ListActive(ctx context.Context) ([]models.Venue, error) {
	all, _ := r.List(ctx)
	active := make([]models.Venue, 0, len(all))
	for _, venue := range all {
		if venue.IsActive {
			active = append(active, venue)
		}
	}
	return active, nil
}

func (r *fakeVenueRepo) Search(ctx context.Context, query string, limit int) ([]models.Venue, error) {
	all, _ := r.List(ctx)
	matched := make([]models.Venue, 0)
	for _, venue := range all {
		if strings.Contains(strings.ToLower(venue.Name), strings.ToLower(query)) {
			matched = append(matched, venue)
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	teams  map[int]models.TournamentTeam
	nextID int
}

func newFakeTeamRepo(teams ...models.TournamentTeam) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: map[int]models.TournamentTeam{}, nextID: 1}
	for _, team := range teams {
		repo.teams[team.ID] = team
		if team.ID >= repo.nextID {
			repo.nextID = team.ID + 1
		}
	}
	return repo
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.TournamentTeam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team.ID = r.nextID
	r.nextID++
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.TournamentTeam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &team, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.TournamentTeam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) List(_ context.Context) ([]models.TournamentTeam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teams := make([]models.TournamentTeam, 0, len(r.teams))
	for _, team := range r.teams {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (r *fakeTeamRepo) ListUnlinked(ctx context.Context) ([]models.TournamentTeam, error) {
	all, _ := r.List(ctx)
	unlinked := make([]models.TournamentTeam, 0)
	for _, team := range all {
		if team.HomeVenueID == nil {
			unlinked = append(unlinked, team)
		}
	}
	return unlinked, nil
}

func (r *fakeTeamRepo) Search(ctx context.Context, query string, limit int) ([]models.TournamentTeam, error) {
	all, _ := r.List(ctx)
	matched := make([]models.TournamentTeam, 0)
	for _, team := range all {
		if strings.Contains(strings.ToLower(team.Name), strings.ToLower(query)) {
			matched = append(matched, team)
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (r *fakeTeamRepo) SetHomeVenue(_ context.Context, teamID, venueID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.HomeVenueID = &venueID
	r.teams[teamID] = team
	return nil
}

type fakeScoreKey struct {
	teamID     int
	venueID    int
	weekEnding string
}

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores map[fakeScoreKey]models.WeeklyScore
	errs   map[string]error
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: map[fakeScoreKey]models.WeeklyScore{}, errs: map[string]error{}}
}

func (r *fakeScoreRepo) GetScores(_ context.Context, teamID, venueID int, seasonStart, seasonEnd time.Time) ([]models.WeeklyScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	scores := make([]models.WeeklyScore, 0)
	for key, score := range r.scores {
		if key.teamID != teamID || key.venueID != venueID {
			continue
		}
		week, err := time.Parse("2006-01-02", key.weekEnding)
		if err != nil || week.Before(seasonStart) || week.After(seasonEnd) {
			continue
		}
		scores = append(scores, score)
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].WeekEnding < scores[j].WeekEnding })
	return scores, nil
}

func (r *fakeScoreRepo) UpsertScore(_ context.Context, teamID, venueID int, weekEnding time.Time, points, numPlayers *int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fakeScoreKey{teamID: teamID, venueID: venueID, weekEnding: weekEnding.Format("2006-01-02")}
	if err, ok := r.errs[key.weekEnding]; ok {
		return err
	}
	r.scores[key] = models.WeeklyScore{WeekEnding: key.weekEnding, Points: points, NumPlayers: numPlayers}
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[int]models.Event
	photos map[int][]string
	nextID int
}

func newFakeEventRepo(events ...models.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: map[int]models.Event{}, photos: map[int][]string{}, nextID: 1}
	for _, event := range events {
		repo.events[event.ID] = event
		if event.ID >= repo.nextID {
			repo.nextID = event.ID + 1
		}
	}
	return repo
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	event.CreatedAt = time.Now()
	r.nextID++
	r.events[event.ID] = *event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	return &event, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrEventNotFound
	}
	r.events[event.ID] = *event
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return repositories.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *fakeEventRepo) List(_ context.Context, filter models.EventFilter) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]models.Event, 0, len(r.events))
	for _, event := range r.events {
		if filter.Status != "" && event.Status != filter.Status {
			continue
		}
		if filter.ShowType != "" && event.ShowType != filter.ShowType {
			continue
		}
		if filter.Start != nil && event.EventDate.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && event.EventDate.After(*filter.End) {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.After(events[j].EventDate) })
	if filter.Limit > 0 && len(events) > filter.Limit {
		events = events[:filter.Limit]
	}
	return events, nil
}

func (r *fakeEventRepo) ListForWeek(_ context.Context, weekStart, weekEnd time.Time) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]models.Event, 0)
	for _, event := range r.events {
		if event.EventDate.Before(weekStart) || event.EventDate.After(weekEnd) {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].EventDate.Before(events[j].EventDate) })
	return events, nil
}

func (r *fakeEventRepo) ExistsForVenueDate(_ context.Context, venueID int, date time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, event := range r.events {
		if event.VenueID == venueID && event.EventDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventRepo) SetValidated(_ context.Context, id int, validated bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return repositories.ErrEventNotFound
	}
	event.IsValidated = validated
	r.events[id] = event
	return nil
}

func (r *fakeEventRepo) AddPhotoURL(_ context.Context, eventID int, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[eventID]; !ok {
		return repositories.ErrEventNotFound
	}
	r.photos[eventID] = append(r.photos[eventID], url)
	return nil
}

func (r *fakeEventRepo) DeletePhotoURL(_ context.Context, eventID int, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	urls := r.photos[eventID]
	for i, existing := range urls {
		if existing == url {
			r.photos[eventID] = append(urls[:i], urls[i+1:]...)
			return nil
		}
	}
	return repositories.ErrEventPhotoNotFound
}

func (r *fakeEventRepo) ListPhotos(_ context.Context, eventID int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.photos[eventID]...), nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *fakeNotifier) Notify(event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakePoster struct {
	posts []string
	err   error
}

func (p *fakePoster) Post(text string) error {
	if p.err != nil {
		return p.err
	}
	p.posts = append(p.posts, text)
	return nil
}

func intPtr(n int) *int { return &n }

func dateAt(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
