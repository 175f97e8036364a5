// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package provider

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"sigs.k8s.io/yaml"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

func splitVolume(t *testing.T, manifest string) (corev1.PersistentVolume, corev1.PersistentVolumeClaim) {
	t.Helper()
	docs := strings.Split(manifest, "---\n")
	require.Len(t, docs, 2)

	var pv corev1.PersistentVolume
	require.NoError(t, yaml.Unmarshal([]byte(docs[0]), &pv))
	var pvc corev1.PersistentVolumeClaim
	require.NoError(t, yaml.Unmarshal([]byte(docs[1]), &pvc))
	return pv, pvc
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr string
	}{
		{"gcp", Config{Kind: "gcp", Project: "p", Cluster: "c", Zone: "z"}, KindGCP, ""},
		{"gcp upper case", Config{Kind: "GCP", Project: "p", Cluster: "c", Zone: "z"}, KindGCP, ""},
		{"azure", Config{Kind: "azure", Subscription: "s", ResourceGroup: "rg", Cluster: "c"}, KindAzure, ""},
		{"aws", Config{Kind: "aws", Cluster: "c", Region: "us-east-1"}, KindAWS, ""},
		{"gcp missing zone", Config{Kind: "gcp", Project: "p", Cluster: "c"}, "", "zone"},
		{"azure missing two", Config{Kind: "azure", Cluster: "c"}, "", "resourceGroup, subscription"},
		{"unknown", Config{Kind: "openstack"}, "", "unsupported provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}
}

func TestBootstrapCommands(t *testing.T) {
	gcp := &GCP{Project: "proj", Cluster: "pumpwood", Zone: "us-east1-b"}
	assert.Equal(t, [][]string{{
		"gcloud", "container", "clusters", "get-credentials", "pumpwood",
		"--zone", "us-east1-b", "--project", "proj",
	}}, gcp.BootstrapCommands())

	az := &Azure{Subscription: "sub", ResourceGroup: "rg", Cluster: "aks"}
	cmds := az.BootstrapCommands()
	require.Len(t, cmds, 2)
	assert.Equal(t, []string{"az", "account", "set", "--subscription", "sub"}, cmds[0])
	assert.Equal(t, "get-credentials", cmds[1][2])

	aws := &AWS{Cluster: "eks", Region: "us-east-1"}
	assert.Equal(t, [][]string{{"aws", "eks", "update-kubeconfig", "--name", "eks", "--region", "us-east-1"}},
		aws.BootstrapCommands())
}

func TestGCPVolumeManifest(t *testing.T) {
	g := &GCP{Project: "p", Cluster: "c", Zone: "z"}

	out, err := g.VolumeManifest(VolumeSpec{Name: "postgres-data", DiskName: "pg-disk", DiskSize: "50Gi", Namespace: "prod"})
	require.NoError(t, err)

	pv, pvc := splitVolume(t, out)
	assert.Equal(t, "PersistentVolume", pv.Kind)
	assert.Equal(t, "postgres-data-pv", pv.Name)
	require.NotNil(t, pv.Spec.GCEPersistentDisk)
	assert.Equal(t, "pg-disk", pv.Spec.GCEPersistentDisk.PDName)
	assert.Equal(t, "ext4", pv.Spec.GCEPersistentDisk.FSType)
	capacity := pv.Spec.Capacity[corev1.ResourceStorage]
	assert.Equal(t, "50Gi", capacity.String())

	assert.Equal(t, "PersistentVolumeClaim", pvc.Kind)
	assert.Equal(t, "postgres-data", pvc.Name)
	assert.Equal(t, "prod", pvc.Namespace)
	assert.Equal(t, "postgres-data-pv", pvc.Spec.VolumeName)
	require.NotNil(t, pvc.Spec.StorageClassName)
	assert.Empty(t, *pvc.Spec.StorageClassName)
}

func TestAzureVolumeManifest(t *testing.T) {
	a := &Azure{Subscription: "sub", ResourceGroup: "rg", Cluster: "c"}

	out, err := a.VolumeManifest(VolumeSpec{Name: "rabbit", DiskName: "rabbit-disk", DiskSize: "10"})
	require.NoError(t, err)

	pv, _ := splitVolume(t, out)
	require.NotNil(t, pv.Spec.AzureDisk)
	assert.Equal(t, "rabbit-disk", pv.Spec.AzureDisk.DiskName)
	assert.Equal(t, "/subscriptions/sub/resourceGroups/rg/providers/Microsoft.Compute/disks/rabbit-disk",
		pv.Spec.AzureDisk.DataDiskURI)
	capacity := pv.Spec.Capacity[corev1.ResourceStorage]
	assert.Equal(t, "10Gi", capacity.String())
}

func TestAWSVolumeManifest(t *testing.T) {
	a := &AWS{Cluster: "c", Region: "r"}

	out, err := a.VolumeManifest(VolumeSpec{Name: "data", DiskName: "vol-0abc", DiskSize: "20Gi", FSType: "xfs"})
	require.NoError(t, err)

	pv, _ := splitVolume(t, out)
	require.NotNil(t, pv.Spec.AWSElasticBlockStore)
	assert.Equal(t, "vol-0abc", pv.Spec.AWSElasticBlockStore.VolumeID)
	assert.Equal(t, "xfs", pv.Spec.AWSElasticBlockStore.FSType)
}

func TestVolumeManifestErrors(t *testing.T) {
	g := &GCP{}
	tests := []struct {
		name string
		spec VolumeSpec
	}{
		{"no name", VolumeSpec{DiskName: "d", DiskSize: "1Gi"}},
		{"no disk", VolumeSpec{Name: "v", DiskSize: "1Gi"}},
		{"no size", VolumeSpec{Name: "v", DiskName: "d"}},
		{"bad size", VolumeSpec{Name: "v", DiskName: "d", DiskSize: "lots"}},
		{"zero size", VolumeSpec{Name: "v", DiskName: "d", DiskSize: "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.VolumeManifest(tt.spec)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
		})
	}
}

func TestParseDiskSize(t *testing.T) {
	q, err := ParseDiskSize(" 100 ")
	require.NoError(t, err)
	assert.True(t, q.Equal(resource.MustParse("100Gi")))

	q, err = ParseDiskSize("512Mi")
	require.NoError(t, err)
	assert.True(t, q.Equal(resource.MustParse("512Mi")))
}
