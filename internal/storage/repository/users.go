package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/profile-platform/internal/models"
)

const userColumns = `uid, email, password_hash, name, role, status, gender, age, bio,
		location, whatsapp, height, measurements, languages, service_hours,
		foto_perfil, fotos, videos, documento, created_at, subscription_end`

// scanUser читает одну строку users в модель.
func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var age sql.NullInt64
	var createdAt, subscriptionEnd sql.NullTime
	var languages, fotos, videos []byte

	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status,
		&u.Gender, &age, &u.Bio, &u.Location, &u.Whatsapp, &u.Height, &u.Measurements,
		&languages, &u.ServiceHours, &u.ProfilePhoto, &fotos, &videos, &u.Document,
		&createdAt, &subscriptionEnd); err != nil {
		return nil, err
	}

	if age.Valid {
		v := int(age.Int64)
		u.Age = &v
	}
	if createdAt.Valid {
		u.CreatedAt = &createdAt.Time
	}
	if subscriptionEnd.Valid {
		u.SubscriptionEnd = &subscriptionEnd.Time
	}
	if err := unmarshalList(languages, &u.Languages); err != nil {
		return nil, err
	}
	if err := unmarshalList(fotos, &u.Photos); err != nil {
		return nil, err
	}
	if err := unmarshalList(videos, &u.Videos); err != nil {
		return nil, err
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, name, role, status, gender,
			      location, whatsapp)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Role, user.Status,
		user.Gender, user.Location, user.Whatsapp).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateProfile обновляет поля анкеты пользователя и возвращает
// количество изменённых строк.
func (s *Storage) UpdateProfile(ctx context.Context, userUID string, u models.User) (int, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	languages, err := marshalList(u.Languages)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET name = $1, age = $2, bio = $3, location = $4, whatsapp = $5,
			      height = $6, measurements = $7, languages = $8, service_hours = $9
			  WHERE uid = $10`
	result, err := s.DB.ExecContext(ctx, query,
		u.Name, u.Age, u.Bio, u.Location, u.Whatsapp,
		u.Height, u.Measurements, languages, u.ServiceHours, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// UpdateMedia сохраняет ключи загруженных медиафайлов пользователя.
func (s *Storage) UpdateMedia(ctx context.Context, userUID, profilePhoto string, photos, videos []string, document string) error {
	const op = "storage.UpdateMedia"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	fotos, err := marshalList(photos)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	vids, err := marshalList(videos)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET foto_perfil = $1, fotos = $2, videos = $3, documento = $4
			  WHERE uid = $5`
	_, err = s.DB.ExecContext(ctx, query, profilePhoto, fotos, vids, document, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateStatus переводит анкету в новый статус модерации и возвращает
// количество изменённых строк.
func (s *Storage) UpdateStatus(ctx context.Context, userUID, status string) (int, error) {
	const op = "storage.UpdateStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET status = $1
			  WHERE uid = $2 AND role = 'model'`
	result, err := s.DB.ExecContext(ctx, query, status, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// SetSubscriptionEnd зеркалирует дату окончания активной подписки на пользователе.
func (s *Storage) SetSubscriptionEnd(ctx context.Context, userUID string, end *time.Time) error {
	const op = "storage.SetSubscriptionEnd"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET subscription_end = $1
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, end, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteUser удаляет пользователя и возвращает количество удалённых строк.
// Связанные взаимодействия и подписки удаляются каскадно на уровне схемы.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListApprovedModels возвращает одобренные анкеты моделей с пагинацией,
// новые первыми.
func (s *Storage) ListApprovedModels(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListApprovedModels"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role = 'model' AND status = 'approved'
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListModels возвращает анкеты моделей для панели администратора.
// При пустом status возвращаются анкеты во всех статусах.
func (s *Storage) ListModels(ctx context.Context, status string, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListModels"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role = 'model'
			    AND ($1::text = '' OR status = $1)
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindTrialExpiringToday находит модели, у которых сегодня заканчивается
// пробный период и нет оплаченной подписки.
func (s *Storage) FindTrialExpiringToday(ctx context.Context) ([]*models.User, error) {
	const op = "storage.FindTrialExpiringToday"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE role = 'model'
			    AND subscription_end IS NULL
			    AND (created_at + INTERVAL '7 days')::DATE = CURRENT_DATE`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
