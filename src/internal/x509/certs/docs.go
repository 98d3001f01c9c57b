// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509certs encodes and decodes [X.509] certificates for fixture files.
// It reads [PEM] bundles (with or without "#" comment lines between blocks),
// raw DER, and [PKCS7] certificate bags, and writes PEM and DER. The chain
// builder uses it to re-parse freshly signed certificates and to emit blocks;
// the inspector uses it to load fixtures back.
//
// [X.509]: https://grokipedia.com/page/X.509
// [PKCS7]: https://grokipedia.com/page/PKCS_7
// [PEM]: https://grokipedia.com/page/PEM#privacy-enhanced-mail
package x509certs
