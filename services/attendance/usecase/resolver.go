package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"attendance/domain"
)

// legacy sticker encoding: "<role>-<id>-qr"
var legacyPattern = regexp.MustCompile(`^(student|teacher)-(.+)-qr$`)

type payloadParser func(raw string) (domain.ScanPayload, bool)

// parsers are tried in order until one accepts the raw string. Tolerant on
// purpose: stickers from three generations of the QR generator are still in
// circulation.
var parsers = []payloadParser{
	parseStructured,
	parseLegacyDash,
	parseBareID,
}

func parseStructured(raw string) (domain.ScanPayload, bool) {
	var payload domain.ScanPayload
	if err := sonic.Unmarshal([]byte(raw), &payload); err != nil {
		return domain.ScanPayload{}, false
	}
	if payload.Type != domain.ScanPayloadType || payload.SubjectID == "" || payload.Role == "" {
		return domain.ScanPayload{}, false
	}
	return payload, true
}

func parseLegacyDash(raw string) (domain.ScanPayload, bool) {
	match := legacyPattern.FindStringSubmatch(raw)
	if match == nil {
		return domain.ScanPayload{}, false
	}
	return domain.ScanPayload{
		Type:        domain.ScanPayloadType,
		SubjectID:   match[2],
		Role:        match[1],
		SubjectName: domain.PlaceholderName,
	}, true
}

func parseBareID(raw string) (domain.ScanPayload, bool) {
	// A malformed envelope is not an identifier; neither is anything with
	// whitespace in it.
	if raw == "" || strings.HasPrefix(raw, "{") || strings.ContainsAny(raw, " \t\n") {
		return domain.ScanPayload{}, false
	}
	return domain.ScanPayload{
		Type:        domain.ScanPayloadType,
		SubjectID:   raw,
		Role:        domain.RoleStudent,
		SubjectName: domain.PlaceholderName,
	}, true
}

// ParsePayload runs the parser chain over a raw scan string.
func ParsePayload(raw string) (domain.ScanPayload, error) {
	raw = strings.TrimSpace(raw)
	for _, parse := range parsers {
		if payload, ok := parse(raw); ok {
			return payload, nil
		}
	}
	return domain.ScanPayload{}, domain.ErrInvalidPayload
}

// MatchCandidate resolves a parsed payload against known subjects. The
// display name always comes from the matched record, never the payload; a
// payload-carried name is only used when nothing matches at all.
func MatchCandidate(payload domain.ScanPayload, candidates []domain.Subject) (*domain.Identity, error) {
	for i := range candidates {
		if candidates[i].Matches(payload.SubjectID) {
			identity := candidates[i].Identity()
			return &identity, nil
		}
	}

	if !payload.HasUsableName() {
		// Placeholder name and no match: nothing meaningful to record.
		return nil, domain.ErrUnknownSubject
	}

	return &domain.Identity{
		ID:          payload.SubjectID,
		DisplayName: payload.SubjectName,
		Role:        payload.Role,
	}, nil
}

type resolverUC struct {
	subjectRepo domain.SubjectRepo
	TimeOut     time.Duration
}

func NewResolverUseCase(repo domain.SubjectRepo, timeOut time.Duration) domain.ResolverUseCase {
	return &resolverUC{
		subjectRepo: repo,
		TimeOut:     timeOut,
	}
}

func (rUC *resolverUC) Resolve(ctx context.Context, raw string) (*domain.Identity, error) {
	payload, err := ParsePayload(raw)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	candidates, err := rUC.subjectRepo.GetAllSubjects(ctx, "")
	if err != nil {
		return nil, err
	}

	return MatchCandidate(payload, *candidates)
}

// Lookup backs manual entry: a direct store lookup, no pattern parsing.
func (rUC *resolverUC) Lookup(ctx context.Context, code string) (*domain.Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, rUC.TimeOut)
	defer cancel()

	subject, err := rUC.subjectRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	identity := subject.Identity()
	return &identity, nil
}
