package model

import "fmt"

// Source identifies the application channel a mature job was vetted through.
type Source string

const (
	SourceCareerPage       Source = "careerpage"
	SourceLinkedIn         Source = "linkedin"
	SourceGlassdoor        Source = "glassdoor"
	SourceIndeed           Source = "indeed"
	SourceJoinTaro         Source = "jointaro"
	SourceWeWorkRemotely   Source = "weworkremotely"
	SourceTalent           Source = "talent"
	SourceCareerBuilder    Source = "careerbuilder"
	SourceRemoteRocketship Source = "remoterocketship"
	SourceMonster          Source = "monster"
	SourceEmail            Source = "email"
)

// ParseSource converts a raw string to a Source, returning an error for
// unknown values.
func ParseSource(s string) (Source, error) {
	src := Source(s)
	switch src {
	case SourceCareerPage, SourceLinkedIn, SourceGlassdoor, SourceIndeed,
		SourceJoinTaro, SourceWeWorkRemotely, SourceTalent, SourceCareerBuilder,
		SourceRemoteRocketship, SourceMonster, SourceEmail:
		return src, nil
	}
	return "", fmt.Errorf("unknown mature job source %q", s)
}
