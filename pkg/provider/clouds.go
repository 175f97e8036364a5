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
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/utils/ptr"
)

// GCP is a Google Kubernetes Engine cluster.
type GCP struct {
	Project string
	Cluster string
	Zone    string
}

func newGCP(cfg Config) (Client, error) {
	if err := requireFields(KindGCP, map[string]string{
		"project": cfg.Project,
		"cluster": cfg.Cluster,
		"zone":    cfg.Zone,
	}); err != nil {
		return nil, err
	}
	return &GCP{Project: cfg.Project, Cluster: cfg.Cluster, Zone: cfg.Zone}, nil
}

func (g *GCP) Name() string { return KindGCP }

func (g *GCP) BootstrapCommands() [][]string {
	return [][]string{{
		"gcloud", "container", "clusters", "get-credentials", g.Cluster,
		"--zone", g.Zone, "--project", g.Project,
	}}
}

func (g *GCP) VolumeManifest(spec VolumeSpec) (string, error) {
	return buildVolume(spec, corev1.PersistentVolumeSource{
		GCEPersistentDisk: &corev1.GCEPersistentDiskVolumeSource{
			PDName: spec.DiskName,
			FSType: fsType(spec),
		},
	})
}

// Azure is an Azure Kubernetes Service cluster.
type Azure struct {
	Subscription  string
	ResourceGroup string
	Cluster       string
}

func newAzure(cfg Config) (Client, error) {
	if err := requireFields(KindAzure, map[string]string{
		"subscription":  cfg.Subscription,
		"resourceGroup": cfg.ResourceGroup,
		"cluster":       cfg.Cluster,
	}); err != nil {
		return nil, err
	}
	return &Azure{Subscription: cfg.Subscription, ResourceGroup: cfg.ResourceGroup, Cluster: cfg.Cluster}, nil
}

func (a *Azure) Name() string { return KindAzure }

func (a *Azure) BootstrapCommands() [][]string {
	return [][]string{
		{"az", "account", "set", "--subscription", a.Subscription},
		{
			"az", "aks", "get-credentials",
			"--resource-group", a.ResourceGroup,
			"--name", a.Cluster,
			"--overwrite-existing",
		},
	}
}

// DiskURI returns the managed disk resource ID for diskName.
func (a *Azure) DiskURI(diskName string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.Compute/disks/%s",
		a.Subscription, a.ResourceGroup, diskName)
}

func (a *Azure) VolumeManifest(spec VolumeSpec) (string, error) {
	kind := corev1.AzureManagedDisk
	return buildVolume(spec, corev1.PersistentVolumeSource{
		AzureDisk: &corev1.AzureDiskVolumeSource{
			DiskName:    spec.DiskName,
			DataDiskURI: a.DiskURI(spec.DiskName),
			Kind:        &kind,
			FSType:      ptr.To(fsType(spec)),
			CachingMode: ptr.To(corev1.AzureDataDiskCachingNone),
		},
	})
}

// AWS is an Elastic Kubernetes Service cluster.
type AWS struct {
	Cluster string
	Region  string
}

func newAWS(cfg Config) (Client, error) {
	if err := requireFields(KindAWS, map[string]string{
		"cluster": cfg.Cluster,
		"region":  cfg.Region,
	}); err != nil {
		return nil, err
	}
	return &AWS{Cluster: cfg.Cluster, Region: cfg.Region}, nil
}

func (a *AWS) Name() string { return KindAWS }

func (a *AWS) BootstrapCommands() [][]string {
	return [][]string{{
		"aws", "eks", "update-kubeconfig", "--name", a.Cluster, "--region", a.Region,
	}}
}

func (a *AWS) VolumeManifest(spec VolumeSpec) (string, error) {
	return buildVolume(spec, corev1.PersistentVolumeSource{
		AWSElasticBlockStore: &corev1.AWSElasticBlockStoreVolumeSource{
			VolumeID: spec.DiskName,
			FSType:   fsType(spec),
		},
	})
}
