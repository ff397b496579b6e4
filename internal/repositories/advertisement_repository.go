package repositories

import (
	"database/sql"
	"fmt"

	"aiowedding/internal/models"
)

type AdvertisementRepository interface {
	Create(ad *models.Advertisement) error
	Update(ad *models.Advertisement) (bool, error)
	Delete(id int64, vendorID int) (bool, error)
	GetByID(id int64) (*models.Advertisement, error)
	ListByVendor(vendorID int) ([]*models.Advertisement, error)
	Count() (int, error)
}

type advertisementRepository struct {
	DB *sql.DB
}

func NewAdvertisementRepository(db *sql.DB) AdvertisementRepository {
	return &advertisementRepository{DB: db}
}

func (r *advertisementRepository) Create(ad *models.Advertisement) error {
	const q = `
		INSERT INTO vendor_advertisements
			(vendor_id, title, service_type, description, price, location, contact_phone, contact_email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at
	`
	if err := r.DB.QueryRow(q,
		ad.VendorID, ad.Title, ad.ServiceType, ad.Description,
		ad.Price, ad.Location, ad.ContactPhone, ad.ContactEmail,
	).Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt); err != nil {
		return fmt.Errorf("create advertisement: %w", err)
	}
	return nil
}

// Update only touches rows owned by ad.VendorID; the ownership check and
// the write are one statement.
func (r *advertisementRepository) Update(ad *models.Advertisement) (bool, error) {
	const q = `
		UPDATE vendor_advertisements
		SET title=$1, service_type=$2, description=$3, price=$4,
		    location=$5, contact_phone=$6, contact_email=$7, updated_at=NOW()
		WHERE id=$8 AND vendor_id=$9
	`
	res, err := r.DB.Exec(q,
		ad.Title, ad.ServiceType, ad.Description, ad.Price,
		ad.Location, ad.ContactPhone, ad.ContactEmail, ad.ID, ad.VendorID,
	)
	if err != nil {
		return false, fmt.Errorf("update advertisement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *advertisementRepository) Delete(id int64, vendorID int) (bool, error) {
	res, err := r.DB.Exec(
		`DELETE FROM vendor_advertisements WHERE id=$1 AND vendor_id=$2`, id, vendorID,
	)
	if err != nil {
		return false, fmt.Errorf("delete advertisement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *advertisementRepository) GetByID(id int64) (*models.Advertisement, error) {
	const q = `
		SELECT id, vendor_id, title, service_type, description,
		       COALESCE(price,''), COALESCE(location,''),
		       COALESCE(contact_phone,''), COALESCE(contact_email,''),
		       created_at, updated_at
		FROM vendor_advertisements
		WHERE id = $1
	`
	ad := &models.Advertisement{}
	err := r.DB.QueryRow(q, id).Scan(
		&ad.ID, &ad.VendorID, &ad.Title, &ad.ServiceType, &ad.Description,
		&ad.Price, &ad.Location, &ad.ContactPhone, &ad.ContactEmail,
		&ad.CreatedAt, &ad.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get advertisement: %w", err)
	}
	return ad, nil
}

func (r *advertisementRepository) ListByVendor(vendorID int) ([]*models.Advertisement, error) {
	const q = `
		SELECT id, vendor_id, title, service_type, description,
		       COALESCE(price,''), COALESCE(location,''),
		       COALESCE(contact_phone,''), COALESCE(contact_email,''),
		       created_at, updated_at
		FROM vendor_advertisements
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.Query(q, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list advertisements: %w", err)
	}
	defer rows.Close()

	var ads []*models.Advertisement
	for rows.Next() {
		ad := &models.Advertisement{}
		if err := rows.Scan(
			&ad.ID, &ad.VendorID, &ad.Title, &ad.ServiceType, &ad.Description,
			&ad.Price, &ad.Location, &ad.ContactPhone, &ad.ContactEmail,
			&ad.CreatedAt, &ad.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan advertisement: %w", err)
		}
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

func (r *advertisementRepository) Count() (int, error) {
	var c int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM vendor_advertisements`).Scan(&c)
	return c, err
}
