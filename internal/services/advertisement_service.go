package services

import (
	"errors"
	"fmt"
	"strings"

	"aiowedding/internal/models"
	"aiowedding/internal/repositories"
)

var ErrAdNotFound = errors.New("advertisement not found or access denied")

type AdvertisementService interface {
	Create(ad *models.Advertisement) error
	Update(ad *models.Advertisement) error
	Delete(id int64, vendorID int) error
	ListForVendor(vendorID int) ([]*models.Advertisement, error)
}

type advertisementService struct {
	repo repositories.AdvertisementRepository
}

func NewAdvertisementService(repo repositories.AdvertisementRepository) AdvertisementService {
	return &advertisementService{repo: repo}
}

func (s *advertisementService) validate(ad *models.Advertisement) error {
	ad.Title = strings.TrimSpace(ad.Title)
	ad.ServiceType = strings.TrimSpace(ad.ServiceType)
	ad.Description = strings.TrimSpace(ad.Description)
	if ad.Title == "" || ad.ServiceType == "" || ad.Description == "" {
		return fmt.Errorf("title, service type and description are required")
	}
	return nil
}

func (s *advertisementService) Create(ad *models.Advertisement) error {
	if err := s.validate(ad); err != nil {
		return err
	}
	return s.repo.Create(ad)
}

func (s *advertisementService) Update(ad *models.Advertisement) error {
	if err := s.validate(ad); err != nil {
		return err
	}
	ok, err := s.repo.Update(ad)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAdNotFound
	}
	return nil
}

func (s *advertisementService) Delete(id int64, vendorID int) error {
	ok, err := s.repo.Delete(id, vendorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAdNotFound
	}
	return nil
}

func (s *advertisementService) ListForVendor(vendorID int) ([]*models.Advertisement, error) {
	return s.repo.ListByVendor(vendorID)
}
