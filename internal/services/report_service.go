package services

import (
	"time"

	"aiowedding/internal/models"
	"aiowedding/internal/pdf"
	"aiowedding/internal/repositories"
)

// ReportService aggregates the admin dashboard numbers and exports them
// as a PDF.
type ReportService interface {
	PlatformSummary() (*models.PlatformSummary, error)
	ExportPlatformReport() (string, error)
}

type reportService struct {
	credentials repositories.CredentialRepository
	ads         repositories.AdvertisementRepository
	pdfGen      pdf.Generator
}

func NewReportService(
	credentials repositories.CredentialRepository,
	ads repositories.AdvertisementRepository,
	pdfGen pdf.Generator,
) ReportService {
	return &reportService{credentials: credentials, ads: ads, pdfGen: pdfGen}
}

func (s *reportService) PlatformSummary() (*models.PlatformSummary, error) {
	sum := &models.PlatformSummary{}

	var err error
	if sum.Couples, err = s.credentials.CountByRole(models.RoleCouple); err != nil {
		return nil, err
	}
	if sum.Vendors, err = s.credentials.CountByRole(models.RoleVendor); err != nil {
		return nil, err
	}
	if sum.Advertisements, err = s.ads.Count(); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	if sum.RecentCouples, err = s.credentials.CountByRoleSince(models.RoleCouple, since); err != nil {
		return nil, err
	}
	if sum.RecentVendors, err = s.credentials.CountByRoleSince(models.RoleVendor, since); err != nil {
		return nil, err
	}
	return sum, nil
}

func (s *reportService) ExportPlatformReport() (string, error) {
	sum, err := s.PlatformSummary()
	if err != nil {
		return "", err
	}
	return s.pdfGen.GeneratePlatformReport(*sum, time.Now())
}
