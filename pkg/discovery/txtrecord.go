package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeServiceTXT creates TXT records for a state daemon advertisement.
func EncodeServiceTXT(info *ServiceInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	// Required fields
	txt[TXTKeyInstanceID] = info.InstanceID
	txt[TXTKeyVersion] = info.Version
	txt[TXTKeyEntityCount] = strconv.Itoa(info.EntityCount)

	// Optional fields
	if info.Name != "" {
		txt[TXTKeyName] = info.Name
	}

	return txt
}

// DecodeServiceTXT parses TXT records from a state daemon advertisement.
func DecodeServiceTXT(txt TXTRecordMap) (*ServiceInfo, error) {
	info := &ServiceInfo{}

	// Parse instance ID (required)
	var ok bool
	info.InstanceID, ok = txt[TXTKeyInstanceID]
	if !ok || info.InstanceID == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyInstanceID)
	}

	// Parse version (required)
	info.Version, ok = txt[TXTKeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}

	// Parse entity count (optional, defaults to zero)
	if entStr, ok := txt[TXTKeyEntityCount]; ok {
		ent, err := strconv.Atoi(entStr)
		if err != nil || ent < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTXTRecord, TXTKeyEntityCount)
		}
		info.EntityCount = ent
	}

	// Optional fields
	info.Name = txt[TXTKeyName]

	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to a slice of "key=value" strings.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}
