/*
 * Copyright 2026 The FileRipper Team
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package secretcfg

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSecretUnmarshalDefaultsToLocal(t *testing.T) {
	var s Secret
	if err := json.Unmarshal([]byte(`{}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Kind != KindLocal {
		t.Fatalf("Kind = %q, want %q", s.Kind, KindLocal)
	}
}

func TestSecretUnmarshalRejectsUnknownType(t *testing.T) {
	var s Secret
	err := json.Unmarshal([]byte(`{"type":"ftps-but-not-really"}`), &s)
	if err == nil {
		t.Fatal("expected an error for an unrecognized type")
	}
}

func TestSecretUnmarshalAppliesDefaultPorts(t *testing.T) {
	cases := []struct {
		json     string
		wantPort int
	}{
		{`{"type":"ftp","host":"h"}`, 21},
		{`{"type":"sftp","host":"h"}`, 22},
		{`{"type":"ftp","host":"h","port":2121}`, 2121},
	}
	for _, tc := range cases {
		var s Secret
		if err := json.Unmarshal([]byte(tc.json), &s); err != nil {
			t.Fatalf("Unmarshal(%q): %v", tc.json, err)
		}
		if s.Port != tc.wantPort {
			t.Errorf("Unmarshal(%q).Port = %d, want %d", tc.json, s.Port, tc.wantPort)
		}
	}
}

func TestSecretUnmarshalHttpDefaultsMethodToGet(t *testing.T) {
	var s Secret
	if err := json.Unmarshal([]byte(`{"type":"http","endpoint":"https://example.com/x"}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.Method != "GET" {
		t.Fatalf("Method = %q, want GET", s.Method)
	}
}

func TestSecretMarshalRoundTrip(t *testing.T) {
	original := Secret{Kind: KindS3, Bucket: "b", Region: "us-east-1", AccessKey: "ak", SecretKey: "sk"}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Secret
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, original) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestTransferRequestEmitProgressDefaultsTrue(t *testing.T) {
	var req TransferRequest
	if err := json.Unmarshal([]byte(`{"source_path":"a","destination_path":"b"}`), &req); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !req.EmitProgress {
		t.Fatal("expected emit_progress to default to true")
	}
}

func TestTransferRequestEmitProgressExplicitFalse(t *testing.T) {
	var req TransferRequest
	if err := json.Unmarshal([]byte(`{"source_path":"a","destination_path":"b","emit_progress":false}`), &req); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if req.EmitProgress {
		t.Fatal("expected emit_progress to stay false when set explicitly")
	}
}

func TestTransferRequestSourceDestinationDefaultToLocal(t *testing.T) {
	req := TransferRequest{SourcePath: "a", DestinationPath: "b"}
	if req.Source().Kind != KindLocal {
		t.Fatalf("Source().Kind = %q, want local", req.Source().Kind)
	}
	if req.Destination().Kind != KindLocal {
		t.Fatalf("Destination().Kind = %q, want local", req.Destination().Kind)
	}
}
