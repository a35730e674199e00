package types

import (
	"encoding/json"
	"fmt"
)

// VideoPeriod filters videos by when they were created.
type VideoPeriod int

const (
	VideoPeriodAll VideoPeriod = iota
	VideoPeriodDay
	VideoPeriodWeek
	VideoPeriodMonth
)

var videoPeriods = newEnumTable(VideoPeriodAll, false, map[VideoPeriod]string{
	VideoPeriodAll:   "all",
	VideoPeriodDay:   "day",
	VideoPeriodWeek:  "week",
	VideoPeriodMonth: "month",
})

func (p VideoPeriod) String() string {
	s, _ := videoPeriods.format(p)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (p VideoPeriod) MarshalText() ([]byte, error) {
	s, err := videoPeriods.format(p)
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *VideoPeriod) UnmarshalText(text []byte) error {
	*p = videoPeriods.parse(string(text))
	return nil
}

// VideoType is the kind of a video or stream.
type VideoType int

const (
	VideoTypeOther VideoType = iota
	VideoTypeLive
	VideoTypePlaylist
	VideoTypeUpload
	VideoTypeArchive
	VideoTypeHighlight
	VideoTypePremiere
	VideoTypeRerun
	VideoTypeWatchParty
	VideoTypeWatchPartyPremiere
	VideoTypeWatchPartyRerun
)

var videoTypes = newEnumTable(VideoTypeOther, false, map[VideoType]string{
	VideoTypeOther:              "other",
	VideoTypeLive:               "live",
	VideoTypePlaylist:           "playlist",
	VideoTypeUpload:             "upload",
	VideoTypeArchive:            "archive",
	VideoTypeHighlight:          "highlight",
	VideoTypePremiere:           "premiere",
	VideoTypeRerun:              "rerun",
	VideoTypeWatchParty:         "watch_party",
	VideoTypeWatchPartyPremiere: "watch_party_premiere",
	VideoTypeWatchPartyRerun:    "watch_party_rerun",
})

func (v VideoType) String() string {
	s, _ := videoTypes.format(v)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (v VideoType) MarshalText() ([]byte, error) {
	s, err := videoTypes.format(v)
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VideoType) UnmarshalText(text []byte) error {
	*v = videoTypes.parse(string(text))
	return nil
}

// VideoPrivacy is the visibility of a video.
type VideoPrivacy int

const (
	VideoPrivacyPublic VideoPrivacy = iota
	VideoPrivacyPrivate
)

var videoPrivacies = newEnumTable(VideoPrivacyPublic, false, map[VideoPrivacy]string{
	VideoPrivacyPublic:  "public",
	VideoPrivacyPrivate: "private",
})

func (v VideoPrivacy) String() string {
	s, _ := videoPrivacies.format(v)
	return s
}

// MarshalText implements encoding.TextMarshaler.
func (v VideoPrivacy) MarshalText() ([]byte, error) {
	s, err := videoPrivacies.format(v)
	return []byte(s), err
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *VideoPrivacy) UnmarshalText(text []byte) error {
	*v = videoPrivacies.parse(string(text))
	return nil
}

// CommercialLength is the length of a commercial in seconds. Only the
// listed lengths are accepted by the API.
type CommercialLength int

const (
	CommercialLength30  CommercialLength = 30
	CommercialLength60  CommercialLength = 60
	CommercialLength90  CommercialLength = 90
	CommercialLength120 CommercialLength = 120
	CommercialLength150 CommercialLength = 150
	CommercialLength180 CommercialLength = 180
)

// InvalidCommercialLengthError is returned for a length the API does not
// accept.
type InvalidCommercialLengthError struct {
	Seconds int
}

// Error implements the error interface.
func (e *InvalidCommercialLengthError) Error() string {
	return fmt.Sprintf("invalid commercial length of %d", e.Seconds)
}

// ParseCommercialLength checks that seconds is one of the accepted lengths.
func ParseCommercialLength(seconds int) (CommercialLength, error) {
	switch l := CommercialLength(seconds); l {
	case CommercialLength30, CommercialLength60, CommercialLength90,
		CommercialLength120, CommercialLength150, CommercialLength180:
		return l, nil
	}
	return 0, &InvalidCommercialLengthError{Seconds: seconds}
}

func (c CommercialLength) String() string {
	return fmt.Sprintf("%ds", int(c))
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *CommercialLength) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	l, err := ParseCommercialLength(n)
	if err != nil {
		return err
	}
	*c = l
	return nil
}
