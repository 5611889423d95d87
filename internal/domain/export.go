package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportKind says what an exported workbook contains.
type ExportKind string

const (
	ExportKindPlan ExportKind = "plan"
	ExportKindLog  ExportKind = "log"
)

// ExportArtifact stores metadata about a generated spreadsheet. The workbook
// itself resides in S3 under ObjectKey; clients fetch it via a presigned URL.
type ExportArtifact struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`

	Kind        ExportKind `bson:"kind" json:"kind"`
	S3ObjectKey string     `bson:"s3ObjectKey" json:"-"` // internal use only
	FileName    string     `bson:"fileName" json:"fileName"`
	ContentType string     `bson:"contentType" json:"contentType"`
	Size        int64      `bson:"size" json:"size"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
