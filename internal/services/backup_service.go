// internal/services/backup_service.go
package services

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/conapesca/repa-backend/internal/config"
)

type BackupService struct {
	cfg      *config.Config
	s3Client *s3.S3
}

func NewBackupService(cfg *config.Config) (*BackupService, error) {
	svc := &BackupService{cfg: cfg}

	if cfg.Backup.S3Bucket != "" && cfg.Backup.S3KeyID != "" {
		sess, err := session.NewSession(&aws.Config{
			Region: aws.String(cfg.Backup.S3Region),
			Credentials: credentials.NewStaticCredentials(
				cfg.Backup.S3KeyID,
				cfg.Backup.S3Secret,
				"",
			),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
	}

	return svc, nil
}

// Stream runs pg_dump and copies its stdout into w as it is produced. stderr
// lines are logged but do not abort the dump once output has started.
func (s *BackupService) Stream(ctx context.Context, w io.Writer) error {
	cmd := s.dumpCommand(ctx)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open pg_dump stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to open pg_dump stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start pg_dump: %w", err)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			logrus.WithField("source", "pg_dump").Warn(scanner.Text())
		}
	}()

	_, copyErr := io.Copy(w, stdout)
	waitErr := cmd.Wait()

	if copyErr != nil {
		return fmt.Errorf("failed to stream dump: %w", copyErr)
	}
	if waitErr != nil {
		return fmt.Errorf("pg_dump failed: %w", waitErr)
	}
	return nil
}

// ArchiveToS3 captures a full dump in memory and stores it in the configured
// bucket. Returns the object key.
func (s *BackupService) ArchiveToS3(ctx context.Context) (string, error) {
	if s.s3Client == nil {
		return "", errors.New("el almacenamiento de respaldos no está configurado")
	}

	var buf bytes.Buffer
	if err := s.Stream(ctx, &buf); err != nil {
		return "", err
	}

	key := fmt.Sprintf("respaldos/repa-%s.sql", time.Now().Format("20060102-150405"))
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Backup.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("application/sql"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload backup: %w", err)
	}

	logrus.WithFields(logrus.Fields{"key": key, "bytes": buf.Len()}).Info("Backup archived to S3")
	return key, nil
}

func (s *BackupService) dumpCommand(ctx context.Context) *exec.Cmd {
	db := s.cfg.Database
	cmd := exec.CommandContext(ctx, s.cfg.Backup.PgDumpPath,
		"--host", db.Host,
		"--port", db.Port,
		"--username", db.User,
		"--no-password",
		db.Database,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+db.Password)
	return cmd
}
