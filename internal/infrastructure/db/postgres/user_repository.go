package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickservice/marketplace-api/internal/core/domain"
	"github.com/quickservice/marketplace-api/internal/core/ports"
)

const uniqueViolation = "23505"

const defaultQueryTimeout = 5 * time.Second

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

func NewUserRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *UserRepository {
	if queryTimeout <= 0 {
		queryTimeout = defaultQueryTimeout
	}
	return &UserRepository{pool: pool, queryTimeout: queryTimeout}
}

const userColumns = `id, email, COALESCE(password_hash, ''), role, name, phone, avatar_url, is_verified, created_at, updated_at`

// CreateUser inserts the user row and, when a profession is supplied, the
// worker extension row inside one transaction. The email unique constraint
// is the authoritative duplicate guard; a violation surfaces as
// domain.ErrUserExists with nothing committed.
func (r *UserRepository) CreateUser(ctx context.Context, params ports.CreateUserParams) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		params.Email, params.PasswordHash, params.Role, params.Name, params.Phone)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, mapStoreErr(fmt.Errorf("insert user: %w", err))
	}

	if params.Profession != nil && *params.Profession != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO workers (user_id, profession) VALUES ($1, $2)`,
			user.ID, *params.Profession)
		if err != nil {
			return nil, mapStoreErr(fmt.Errorf("insert worker: %w", err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapStoreErr(fmt.Errorf("commit: %w", err))
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mapStoreErr(fmt.Errorf("find user by email: %w", err))
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	user, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mapStoreErr(fmt.Errorf("find user by id: %w", err))
	}
	return user, nil
}

// GetProfile returns the user left-joined with its worker extension. The
// worker part is nil when no extension row exists.
func (r *UserRepository) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.role, u.name, u.phone, u.avatar_url,
		       u.is_verified, u.created_at, u.updated_at,
		       w.profession, w.description, w.experience_years, w.hourly_rate,
		       w.immediate_service, w.availability, w.rating, w.total_ratings,
		       w.completed_services
		FROM users u
		LEFT JOIN workers w ON w.user_id = u.id
		WHERE u.id = $1`, userID)

	var (
		p          domain.Profile
		profession *string
		w          workerRow
	)
	err := row.Scan(
		&p.ID, &p.Email, &p.Role, &p.Name, &p.Phone, &p.AvatarURL,
		&p.IsVerified, &p.CreatedAt, &p.UpdatedAt,
		&profession, &w.description, &w.experienceYears, &w.hourlyRate,
		&w.immediateService, &w.availability, &w.rating, &w.totalRatings,
		&w.completedServices,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, mapStoreErr(fmt.Errorf("get profile: %w", err))
	}

	p.Worker = w.toDomain(profession)
	return &p, nil
}

// UpdateProfile updates the user core fields and, for workers, upserts the
// extension row. The upsert relies on the unique user_id constraint, so two
// racing updates cannot produce duplicate rows.
func (r *UserRepository) UpdateProfile(ctx context.Context, params ports.UpdateProfileParams) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return mapStoreErr(fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET name = $2, phone = $3, avatar_url = $4, updated_at = NOW()
		WHERE id = $1`,
		params.UserID, params.Name, params.Phone, params.AvatarURL)
	if err != nil {
		return mapStoreErr(fmt.Errorf("update user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	if params.Role == domain.RoleWorker {
		if params.Profession != nil && *params.Profession != "" {
			_, err = tx.Exec(ctx, `
				INSERT INTO workers (user_id, profession, description, experience_years, hourly_rate)
				VALUES ($1, $2, $3, COALESCE($4, 0), $5)
				ON CONFLICT (user_id) DO UPDATE SET
					profession       = EXCLUDED.profession,
					description      = EXCLUDED.description,
					experience_years = EXCLUDED.experience_years,
					hourly_rate      = EXCLUDED.hourly_rate,
					updated_at       = NOW()`,
				params.UserID, *params.Profession, params.Description,
				params.ExperienceYears, params.HourlyRate)
		} else {
			// No profession supplied: touch an existing extension row only,
			// never create an incomplete one.
			_, err = tx.Exec(ctx, `
				UPDATE workers
				SET description = $2, experience_years = COALESCE($3, experience_years),
				    hourly_rate = $4, updated_at = NOW()
				WHERE user_id = $1`,
				params.UserID, params.Description, params.ExperienceYears, params.HourlyRate)
		}
		if err != nil {
			return mapStoreErr(fmt.Errorf("upsert worker: %w", err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return mapStoreErr(fmt.Errorf("commit: %w", err))
	}
	return nil
}

// UpdateAvatar writes only the avatar column; worker rows and the rest of
// the user row stay as they are.
func (r *UserRepository) UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`,
		userID, avatarURL)
	if err != nil {
		return mapStoreErr(fmt.Errorf("update avatar: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		userID, passwordHash)
	if err != nil {
		return mapStoreErr(fmt.Errorf("update password: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the user row; the workers FK cascades.
func (r *UserRepository) DeleteUser(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return mapStoreErr(fmt.Errorf("delete user: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListWorkers returns verified workers with an extension row, filtered and
// ordered by rating, then completed services. Inner-join semantics keep
// incomplete workers out of the directory.
func (r *UserRepository) ListWorkers(ctx context.Context, filter ports.WorkerFilter) ([]domain.WorkerListing, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`
		SELECT u.id, u.name, u.avatar_url, u.created_at,
		       w.profession, w.description, w.experience_years, w.hourly_rate,
		       w.immediate_service, w.availability, w.rating, w.total_ratings,
		       w.completed_services
		FROM users u
		INNER JOIN workers w ON w.user_id = u.id
		WHERE u.role = 'worker' AND u.is_verified = TRUE`)

	if filter.Profession != "" {
		args = append(args, filter.Profession)
		sb.WriteString(" AND w.profession = $" + strconv.Itoa(len(args)))
	}
	if filter.MinRating != nil {
		args = append(args, *filter.MinRating)
		sb.WriteString(" AND w.rating >= $" + strconv.Itoa(len(args)))
	}
	if filter.OnlyAvailable {
		sb.WriteString(" AND w.availability = 'available'")
	}
	sb.WriteString(" ORDER BY w.rating DESC, w.completed_services DESC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapStoreErr(fmt.Errorf("list workers: %w", err))
	}
	defer rows.Close()

	listings := []domain.WorkerListing{}
	for rows.Next() {
		listing, err := scanWorkerListing(rows)
		if err != nil {
			return nil, mapStoreErr(fmt.Errorf("scan worker: %w", err))
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreErr(fmt.Errorf("list workers: %w", err))
	}
	return listings, nil
}

func (r *UserRepository) GetWorker(ctx context.Context, userID int64) (*domain.WorkerListing, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	listing, err := scanWorkerListing(r.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.avatar_url, u.created_at,
		       w.profession, w.description, w.experience_years, w.hourly_rate,
		       w.immediate_service, w.availability, w.rating, w.total_ratings,
		       w.completed_services
		FROM users u
		INNER JOIN workers w ON w.user_id = u.id
		WHERE u.id = $1 AND u.role = 'worker' AND u.is_verified = TRUE`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, mapStoreErr(fmt.Errorf("get worker: %w", err))
	}
	return listing, nil
}

func (r *UserRepository) UpdateAvailability(ctx context.Context, userID int64, availability domain.Availability) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx,
		`UPDATE workers SET availability = $2, updated_at = NOW() WHERE user_id = $1`,
		userID, availability)
	if err != nil {
		return mapStoreErr(fmt.Errorf("update availability: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWorkerNotFound
	}
	return nil
}

// workerRow collects the nullable extension columns of a left join.
type workerRow struct {
	description       *string
	experienceYears   *int
	hourlyRate        *float64
	immediateService  *bool
	availability      *string
	rating            *float64
	totalRatings      *int
	completedServices *int
}

// toDomain materializes the extension when the join matched; profession is
// NOT NULL in the schema, so its presence decides.
func (w workerRow) toDomain(profession *string) *domain.WorkerInfo {
	if profession == nil {
		return nil
	}
	info := &domain.WorkerInfo{
		Profession:  *profession,
		Description: w.description,
		HourlyRate:  w.hourlyRate,
	}
	if w.experienceYears != nil {
		info.ExperienceYears = *w.experienceYears
	}
	if w.immediateService != nil {
		info.ImmediateService = *w.immediateService
	}
	if w.availability != nil {
		info.Availability = domain.Availability(*w.availability)
	}
	if w.rating != nil {
		info.Rating = *w.rating
	}
	if w.totalRatings != nil {
		info.TotalRatings = *w.totalRatings
	}
	if w.completedServices != nil {
		info.CompletedServices = *w.completedServices
	}
	return info
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name,
		&u.Phone, &u.AvatarURL, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanWorkerListing(row pgx.Row) (*domain.WorkerListing, error) {
	var l domain.WorkerListing
	var description *string
	var hourlyRate *float64
	err := row.Scan(
		&l.ID, &l.Name, &l.AvatarURL, &l.MemberSince,
		&l.Profession, &description, &l.ExperienceYears, &hourlyRate,
		&l.ImmediateService, &l.Availability, &l.Rating, &l.TotalRatings,
		&l.CompletedServices,
	)
	if err != nil {
		return nil, err
	}
	l.Description = description
	l.HourlyRate = hourlyRate
	return &l, nil
}

// mapStoreErr converts pool timeouts and dead connections into the retryable
// store-unavailable sentinel; everything else passes through wrapped.
func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return err
}
