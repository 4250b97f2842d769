package models

import "strconv"

// UserDelta is a partial field update for a user record. The backend's
// single-user update endpoint accepts form-encoded text, so boolean values
// are carried as the literal strings "true"/"false".
type UserDelta map[string]string

// Writable field names accepted by the backend update endpoints.
const (
	FieldStatus               = "status"
	FieldMembership           = "memtype"
	FieldMembershipExpiry     = "expiry"
	FieldPhoto1Approved       = "photo1Approve"
	FieldPhoto2Approved       = "photo2Approve"
	FieldBioApproved          = "bioApproved"
	FieldExpectationsApproved = "expectationsApproved"
	FieldChatAllowed          = "chatAllowed"
	FieldVideoCallAllowed     = "videoCallAllowed"
	FieldAudioCallAllowed     = "audioCallAllowed"
	FieldChatMessages         = "chat_msg"
	FieldVideoMinutes         = "video_min"
	FieldVoiceMinutes         = "voice_min"
)

// SetBool records a boolean field in its form-encoded string form.
func (d UserDelta) SetBool(field string, v bool) {
	d[field] = strconv.FormatBool(v)
}

// SetInt records an integer field in its form-encoded string form.
func (d UserDelta) SetInt(field string, v int) {
	d[field] = strconv.Itoa(v)
}

// ApplyTo merges the delta into a cached user record, converting
// "true"/"false" back to booleans. Unknown fields are ignored. This is the
// optimistic local merge that follows a confirmed single-user write.
func (d UserDelta) ApplyTo(u *User) {
	for field, raw := range d {
		switch field {
		case FieldStatus:
			u.Status = raw
		case FieldMembership:
			u.Membership = raw
		case FieldMembershipExpiry:
			u.MembershipExpiry = raw
		case FieldPhoto1Approved:
			u.Photo1Approved = raw == "true"
		case FieldPhoto2Approved:
			u.Photo2Approved = raw == "true"
		case FieldBioApproved:
			u.BioApproved = raw == "true"
		case FieldExpectationsApproved:
			u.ExpectationsApproved = raw == "true"
		case FieldChatAllowed:
			u.ChatAllowed = raw == "true"
		case FieldVideoCallAllowed:
			u.VideoCallAllowed = raw == "true"
		case FieldAudioCallAllowed:
			u.AudioCallAllowed = raw == "true"
		case FieldChatMessages:
			if n, err := strconv.Atoi(raw); err == nil {
				u.ChatMessages = n
			}
		case FieldVideoMinutes:
			if n, err := strconv.Atoi(raw); err == nil {
				u.VideoMinutes = n
			}
		case FieldVoiceMinutes:
			if n, err := strconv.Atoi(raw); err == nil {
				u.VoiceMinutes = n
			}
		}
	}
}
