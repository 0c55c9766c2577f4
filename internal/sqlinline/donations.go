package sqlinline

const donationCols = `id, campaign_id, donor_id, amount::text, payment_method,
       coalesce(session_ref, ''), external_txn_id, status, verified_by, verified_at,
       receipt_path, created_at`

const QInsertDonation = `--sql 16a97975-faca-442b-ac92-25f9e9a86d8b
insert into donations (id, campaign_id, donor_id, amount, payment_method, session_ref,
                       status, receipt_path, created_at)
values ($1::uuid, $2::uuid, $3, $4::numeric, $5, nullif($6, ''), 'pending', $7, now());
`

const QSelectDonation = `--sql 10cf4306-c69d-4de8-ac58-7950455bca1d
select ` + donationCols + `
from donations
where id = $1::uuid;
`

const QSelectDonationBySession = `--sql 25a7ee07-b8dc-4eff-b55b-194403b83fb9
select ` + donationCols + `
from donations
where session_ref = $1;
`

const QListDonations = `--sql b4612462-538b-4962-b5a8-21c7d94caaf4
select ` + donationCols + `
from donations
where ($1::text = '' or status = $1::text)
  and ($2::text = '' or campaign_id = $2::uuid)
order by created_at desc;
`

// Row lock on the donation drives the per-donation serializability of
// ApplyVerification.
const QSelectDonationForUpdate = `--sql 253326fb-c4e1-4658-942c-6447bd442ced
select status, campaign_id, amount::text
from donations
where id = $1::uuid
for update;
`

const QResolveDonation = `--sql 995f58c3-8624-45f1-8c50-4091324d1188
update donations
set status = $2, verified_by = $3, verified_at = $4
where id = $1::uuid;
`

const QAddToCampaignTotal = `--sql a7ded8e5-bb2d-4c05-a9ed-3a326f39f290
update campaigns
set current_amount = current_amount + $2::numeric, updated_at = now()
where id = $1::uuid;
`

const QSetExternalTxn = `--sql eb6b06cb-164d-4cde-a623-e05cc7a06157
update donations
set external_txn_id = $2
where id = $1::uuid and external_txn_id in ('', $2);
`

const QSelectExternalTxn = `--sql c5ae4b45-c972-4962-83c2-ffcf53fed370
select external_txn_id
from donations
where id = $1::uuid;
`
