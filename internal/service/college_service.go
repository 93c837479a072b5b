package service

import (
	"flatmate/internal/apperr"
	"flatmate/internal/model"
	"flatmate/pkg/redis"
)

type collegeStore interface {
	List() ([]*model.College, error)
}

// CollegeService serves the seeded directory, with a redis cache in front
// since the list only changes on re-seed.
type CollegeService struct {
	colleges collegeStore
}

func NewCollegeService(colleges collegeStore) *CollegeService {
	return &CollegeService{colleges: colleges}
}

// List returns id/name/city entries ordered by name.
func (s *CollegeService) List() ([]redis.CachedCollege, error) {
	if cached, err := redis.GetCachedColleges(); err == nil && cached != nil {
		return cached, nil
	}

	colleges, err := s.colleges.List()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	entries := make([]redis.CachedCollege, 0, len(colleges))
	for _, c := range colleges {
		entries = append(entries, redis.CachedCollege{ID: c.ID, Name: c.Name, City: c.City})
	}

	_ = redis.CacheColleges(entries)
	return entries, nil
}
