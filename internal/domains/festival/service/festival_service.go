package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"festivals-backend/internal/domains/festival"
	"festivals-backend/internal/shared/hyper"
)

// listProjection is the fixed field set a collection listing exposes
// per item; the full document is only served by Get.
var listProjection = []string{
	"name", "description", "imageUrl", "date", "locationType", "hasBookmark",
}

type festivalService struct {
	repo  festival.Repository
	links *hyper.Builder
}

// NewFestivalService wires the collection logic to its repository and
// the hyperlink builder.
func NewFestivalService(repo festival.Repository, links *hyper.Builder) festival.Service {
	return &festivalService{repo: repo, links: links}
}

func (s *festivalService) List(ctx context.Context, values url.Values, requestURI string) (*festival.CollectionEnvelope, error) {
	query := festival.ParseListQuery(values)

	total, err := s.repo.Count(ctx, query.Filter)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0)
	limit, offset := query.Window(total)
	if limit > 0 && total > 0 {
		records, err := s.repo.Find(ctx, query.Filter, limit, offset)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			items = append(items, s.projectItem(rec))
		}
	}

	requestHref := s.links.RequestHref(requestURI)
	return &festival.CollectionEnvelope{
		Items:      items,
		Links:      s.links.CollectionLinks(requestURI),
		Pagination: festival.NewPagination(requestHref, query, total, len(items)),
	}, nil
}

func (s *festivalService) Get(ctx context.Context, id string) (*festival.Resource, error) {
	recordID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	return &festival.Resource{
		Body:         s.resource(rec),
		LastModified: rec.LastModified(),
	}, nil
}

func (s *festivalService) Create(ctx context.Context, body map[string]any) (map[string]any, error) {
	if errs := festival.ValidateDocument(body); errs != nil {
		return nil, errs
	}

	rec, err := s.repo.Create(ctx, festival.BuildDocument(body))
	if err != nil {
		return nil, err
	}
	return s.resource(rec), nil
}

func (s *festivalService) Replace(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	recordID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if errs := festival.ValidateDocument(body); errs != nil {
		return nil, errs
	}

	rec, err := s.repo.Replace(ctx, recordID, festival.BuildDocument(body))
	if err != nil {
		return nil, err
	}
	return s.resource(rec), nil
}

func (s *festivalService) Patch(ctx context.Context, id string, body map[string]any) (map[string]any, error) {
	recordID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if err := festival.ValidatePatch(body); err != nil {
		return nil, err
	}

	rec, err := s.repo.Patch(ctx, recordID, body)
	if err != nil {
		return nil, err
	}
	return s.resource(rec), nil
}

func (s *festivalService) Delete(ctx context.Context, id string) error {
	recordID, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, recordID)
}

// Seed wipes the collection and inserts amount synthetic festivals one
// by one. There is no transaction around the wipe and the inserts:
// readers racing a reseed may see a partially repopulated collection,
// which is accepted behavior.
func (s *festivalService) Seed(ctx context.Context, amount int) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}

	for i := 0; i < amount; i++ {
		if _, err := s.repo.Create(ctx, randomFestival()); err != nil {
			return fmt.Errorf("seed festival %d: %w", i+1, err)
		}
	}
	return nil
}

// resource shapes a stored record into its full representation: the
// whole document plus identity, timestamps and hyperlinks.
func (s *festivalService) resource(rec *festival.Record) map[string]any {
	body := make(map[string]any, len(rec.Doc)+4)
	for k, v := range rec.Doc {
		body[k] = v
	}

	id := rec.ID.String()
	body["id"] = id
	body["createdAt"] = rec.CreatedAt.UTC()
	body["updatedAt"] = rec.UpdatedAt.UTC()
	body["_links"] = s.links.ResourceLinks(id)
	return body
}

// projectItem shapes a record for the listing: projection fields only.
func (s *festivalService) projectItem(rec *festival.Record) map[string]any {
	item := make(map[string]any, len(listProjection)+2)
	for _, field := range listProjection {
		if v, ok := rec.Doc[field]; ok {
			item[field] = v
		}
	}

	id := rec.ID.String()
	item["id"] = id
	item["_links"] = s.links.ResourceLinks(id)
	return item
}

// parseID maps malformed identifiers to not-found, like a document
// store failing to cast an object id.
func parseID(id string) (uuid.UUID, error) {
	recordID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, festival.ErrNotFound
	}
	return recordID, nil
}
