package domain

import "time"

// TargetKind selects the downstream artifact encoder for a generation.
type TargetKind string

const (
	TargetThreeD TargetKind = "3d"
	TargetTwoD   TargetKind = "2d"
)

// ArtifactKind names one output file of a session.
type ArtifactKind string

const (
	ArtifactMesh   ArtifactKind = "mesh"      // binary glTF drape asset
	ArtifactVector ArtifactKind = "svg"       // vector pattern diagram
	ArtifactRaster ArtifactKind = "png"       // rasterized diagram
	ArtifactPrint  ArtifactKind = "print_pdf" // paginated print document
)

// SessionStatus tracks the session lifecycle. Transitions are strictly
// Created -> Ready -> Deleted; nothing re-enters an earlier state.
type SessionStatus string

const (
	SessionCreated SessionStatus = "created"
	SessionReady   SessionStatus = "ready"
	SessionDeleted SessionStatus = "deleted"
)

// Session binds one generation request to its isolated on-disk output
// directory until explicitly released. The directory is exclusively owned by
// the session; artifacts are recorded only by the orchestrator that created
// it. A session is a leaked-by-default resource: nothing reclaims the
// directory except an explicit Cleanup call.
type Session struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	OutputDir string                  `json:"output_dir"`
	Artifacts map[ArtifactKind]string `json:"artifacts"`
	Status    SessionStatus           `json:"status"`
}

// NewSession returns a Created session owning the given directory.
func NewSession(id, outputDir string, at time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: at,
		OutputDir: outputDir,
		Artifacts: make(map[ArtifactKind]string),
		Status:    SessionCreated,
	}
}

// Clone returns a copy whose artifact map is independent of the receiver.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Artifacts = make(map[ArtifactKind]string, len(s.Artifacts))
	for k, v := range s.Artifacts {
		cp.Artifacts[k] = v
	}
	return &cp
}
