package main

// version metadata, injected at build time via -ldflags

import "fmt"

var versionBranch, versionTag, versionDate, versionRevision string

type Version struct {
	Branch, Tag, Date, Revision string
}

func (v Version) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", v.Branch, v.Tag, v.Date, v.Revision)
}

func GetVersion() Version {
	return Version{
		Branch:   versionBranch,
		Tag:      versionTag,
		Date:     versionDate,
		Revision: versionRevision,
	}
}
