package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/mobility_map/internal/models"
	"github.com/shenikar/mobility_map/internal/service"
)

// uniqueViolation - код ошибки postgres при нарушении UNIQUE
const uniqueViolation = "23505"

type CommunityRepository struct {
	db *pgxpool.Pool
}

func NewCommunityRepository(db *pgxpool.Pool) service.CommunityRepository {
	return &CommunityRepository{db: db}
}

// ListMembers возвращает участников сообщества в порядке вступления
func (r *CommunityRepository) ListMembers(ctx context.Context, issueID string) ([]models.CommunityMember, error) {
	numericID, ok := parseIssueID(issueID)
	if !ok {
		return []models.CommunityMember{}, nil
	}

	query := `
		SELECT id, name, role, avatar_url
		FROM community_members
		WHERE issue_id = $1
		ORDER BY joined_at;
	`
	rows, err := r.db.Query(ctx, query, numericID)
	if err != nil {
		return nil, fmt.Errorf("failed to list community members: %w", err)
	}
	defer rows.Close()

	members := make([]models.CommunityMember, 0)
	for rows.Next() {
		var id uuid.UUID
		var m models.CommunityMember
		if err := rows.Scan(&id, &m.Name, &m.Role, &m.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan community member row: %w", err)
		}
		m.ID = id.String()
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return members, nil
}

// FindMembership ищет запись об участии пользователя в сообществе проблемы
func (r *CommunityRepository) FindMembership(ctx context.Context, issueID, userID string) (*models.Membership, error) {
	numericID, ok := parseIssueID(issueID)
	if !ok {
		return nil, models.ErrNotFound
	}

	query := `
		SELECT id, issue_id::text, user_id, name, role, avatar_url, joined_at
		FROM community_members
		WHERE issue_id = $1 AND user_id = $2;
	`
	m, err := scanMembership(r.db.QueryRow(ctx, query, numericID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return m, nil
}

// GetMembership возвращает запись об участии по ее UUID
func (r *CommunityRepository) GetMembership(ctx context.Context, id uuid.UUID) (*models.Membership, error) {
	query := `
		SELECT id, issue_id::text, user_id, name, role, avatar_url, joined_at
		FROM community_members
		WHERE id = $1;
	`
	m, err := scanMembership(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("membership with id %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return m, nil
}

// AddMember сохраняет нового участника
func (r *CommunityRepository) AddMember(ctx context.Context, m *models.Membership) error {
	numericID, ok := parseIssueID(m.IssueID)
	if !ok {
		return fmt.Errorf("issue with id %s: %w", m.IssueID, models.ErrNotFound)
	}

	query := `
		INSERT INTO community_members (id, issue_id, user_id, name, role, avatar_url, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query, m.ID, numericID, m.UserID, m.Name, m.Role, m.AvatarURL, m.JoinedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.ErrAlreadyMember
		}
		return fmt.Errorf("failed to add community member: %w", err)
	}
	return nil
}

// RemoveMember удаляет запись об участии
func (r *CommunityRepository) RemoveMember(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM community_members WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to remove community member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("membership with id %s not found for delete: %w", id, models.ErrNotFound)
	}
	return nil
}

// ListDocuments возвращает документы проблемы, новые первыми
func (r *CommunityRepository) ListDocuments(ctx context.Context, issueID string) ([]models.Document, error) {
	numericID, ok := parseIssueID(issueID)
	if !ok {
		return []models.Document{}, nil
	}

	query := `
		SELECT id::text, issue_id::text, name, url, doc_type, uploaded_by, created_at
		FROM issue_documents
		WHERE issue_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.db.Query(ctx, query, numericID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.IssueID, &d.Name, &d.URL, &d.Type, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return docs, nil
}

// AddDocument сохраняет ссылку на документ
func (r *CommunityRepository) AddDocument(ctx context.Context, doc *models.Document) error {
	numericID, ok := parseIssueID(doc.IssueID)
	if !ok {
		return fmt.Errorf("issue with id %s: %w", doc.IssueID, models.ErrNotFound)
	}
	docID, err := uuid.Parse(doc.ID)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", doc.ID, err)
	}

	query := `
		INSERT INTO issue_documents (id, issue_id, name, url, doc_type, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.db.Exec(ctx, query, docID, numericID, doc.Name, doc.URL, doc.Type, doc.UploadedBy, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}
	return nil
}

func scanMembership(row pgx.Row) (*models.Membership, error) {
	m := &models.Membership{}
	err := row.Scan(&m.ID, &m.IssueID, &m.UserID, &m.Name, &m.Role, &m.AvatarURL, &m.JoinedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
