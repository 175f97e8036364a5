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
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/Murabei-OpenSource-Codes/pumpwood-deploy-sub000/pkg/errors"
)

// Client is a cloud-provider collaborator.
type Client interface {
	// Name returns the provider kind.
	Name() string
	// BootstrapCommands returns the commands that configure kubectl
	// credentials for the cluster, in order.
	BootstrapCommands() [][]string
	// VolumeManifest returns a PersistentVolume and PersistentVolumeClaim
	// manifest for a pre-provisioned disk.
	VolumeManifest(spec VolumeSpec) (string, error)
}

// VolumeSpec describes a disk to expose to the cluster.
type VolumeSpec struct {
	// Name is the claim name. The volume is named "<Name>-pv".
	Name string
	// DiskName is the cloud identifier of the disk.
	DiskName string
	// DiskSize is a Kubernetes quantity. A bare integer is read as Gi.
	DiskSize string
	// Namespace of the claim. Empty leaves it to kubectl -n.
	Namespace string
	// FSType defaults to ext4.
	FSType string
}

// Config selects and configures a provider.
type Config struct {
	Kind          string `yaml:"kind" json:"kind"`
	Project       string `yaml:"project,omitempty" json:"project,omitempty"`
	Cluster       string `yaml:"cluster,omitempty" json:"cluster,omitempty"`
	Zone          string `yaml:"zone,omitempty" json:"zone,omitempty"`
	Region        string `yaml:"region,omitempty" json:"region,omitempty"`
	ResourceGroup string `yaml:"resourceGroup,omitempty" json:"resourceGroup,omitempty"`
	Subscription  string `yaml:"subscription,omitempty" json:"subscription,omitempty"`
}

// Provider kinds.
const (
	KindGCP   = "gcp"
	KindAzure = "azure"
	KindAWS   = "aws"
)

type constructor func(Config) (Client, error)

var constructors = map[string]constructor{
	KindGCP:   newGCP,
	KindAzure: newAzure,
	KindAWS:   newAWS,
}

// Kinds returns the supported provider kinds, sorted.
func Kinds() []string {
	kinds := make([]string, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// New returns the provider client for cfg.Kind.
func New(cfg Config) (Client, error) {
	c, ok := constructors[strings.ToLower(cfg.Kind)]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported provider %q", cfg.Kind),
			map[string]any{"supported": Kinds()})
	}
	return c(cfg)
}

func requireFields(kind string, fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return errors.New(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("%s provider requires %s", kind, strings.Join(missing, ", ")))
}

// ParseDiskSize parses a disk size, reading a bare integer as Gi.
func ParseDiskSize(size string) (resource.Quantity, error) {
	s := strings.TrimSpace(size)
	if s == "" {
		return resource.Quantity{}, errors.New(errors.ErrCodeInvalidRequest, "disk size is required")
	}
	if strings.Trim(s, "0123456789") == "" {
		s += "Gi"
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return resource.Quantity{}, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid disk size %q", size), err)
	}
	if q.Sign() <= 0 {
		return resource.Quantity{}, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("disk size %q must be positive", size))
	}
	return q, nil
}

// buildVolume renders the volume pair with the provider specific source.
func buildVolume(spec VolumeSpec, source corev1.PersistentVolumeSource) (string, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "volume name is required")
	}
	if strings.TrimSpace(spec.DiskName) == "" {
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "disk name is required",
			map[string]any{"volume": spec.Name})
	}
	size, err := ParseDiskSize(spec.DiskSize)
	if err != nil {
		return "", err
	}

	pvName := spec.Name + "-pv"
	labels := map[string]string{
		"app.kubernetes.io/managed-by": "pumpwood-deploy",
		"pumpwood.io/volume":           spec.Name,
	}

	pv := corev1.PersistentVolume{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolume"},
		ObjectMeta: metav1.ObjectMeta{
			Name:   pvName,
			Labels: labels,
		},
		Spec: corev1.PersistentVolumeSpec{
			Capacity:                      corev1.ResourceList{corev1.ResourceStorage: size},
			AccessModes:                   []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			PersistentVolumeReclaimPolicy: corev1.PersistentVolumeReclaimRetain,
			StorageClassName:              "",
			PersistentVolumeSource:        source,
		},
	}

	pvc := corev1.PersistentVolumeClaim{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "PersistentVolumeClaim"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      spec.Name,
			Namespace: spec.Namespace,
			Labels:    labels,
		},
		Spec: corev1.PersistentVolumeClaimSpec{
			AccessModes:      []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
			StorageClassName: ptr.To(""),
			VolumeName:       pvName,
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: size},
			},
		},
	}

	pvYAML, err := yaml.Marshal(pv)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to marshal persistent volume", err)
	}
	pvcYAML, err := yaml.Marshal(pvc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to marshal persistent volume claim", err)
	}
	return string(pvYAML) + "---\n" + string(pvcYAML), nil
}

func fsType(spec VolumeSpec) string {
	if spec.FSType != "" {
		return spec.FSType
	}
	return "ext4"
}
